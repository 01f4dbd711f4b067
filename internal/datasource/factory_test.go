package datasource

import "testing"

func TestNewMemoryDefaultsOnEmptyKind(t *testing.T) {
	src, err := New("", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := src.(*Memory); !ok {
		t.Errorf("got %T, want *Memory", src)
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New("bogus", nil); err == nil {
		t.Fatal("expected an error for an unknown datasource kind")
	}
}

func TestNewPostgisFailsWithoutReachableServer(t *testing.T) {
	_, err := New("postgis", Params{"conn_string": "postgres://localhost:1/db?sslmode=disable"})
	if err == nil {
		t.Fatal("expected a construction error when the server is unreachable")
	}
	if _, ok := err.(*ConstructError); !ok {
		t.Errorf("error type = %T, want *ConstructError", err)
	}
}
