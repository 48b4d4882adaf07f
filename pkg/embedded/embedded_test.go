package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/arena.yaml": &fstest.MapFile{Data: []byte("grid:\n  width: 9\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
}

func TestNotInitialized(t *testing.T) {
	Init(nil)

	if _, err := ReadFile("data/arena.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile() error = %v, want errNotInitialized", err)
	}
	if _, err := Open("data/arena.yaml"); err != errNotInitialized {
		t.Errorf("Open() error = %v, want errNotInitialized", err)
	}
	if Exists("data/arena.yaml") {
		t.Error("Exists() should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain path", "data/arena.yaml", false},
		{"dot prefix", "./data/arena.yaml", false},
		{"missing file", "data/missing.yaml", true},
		{"wrong prefix", "assets/arena.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Error("ReadFile() returned empty data")
			}
		})
	}

	if !Exists("data/arena.yaml") || Exists("data/missing.yaml") {
		t.Error("Exists() mismatch")
	}
}
