package logging

import "testing"

func TestNewDefaults(t *testing.T) {
	logger, err := New(Config{})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewConsoleEncoding(t *testing.T) {
	logger, err := New(Config{Level: "debug", Encoding: "console"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}
