package embedded

import (
	"errors"
	"io"
	"testing"
	"testing/fstest"
)

func initTestFS() {
	Init(
		fstest.MapFS{"assets/images/mug.png": {Data: []byte("png")}},
		fstest.MapFS{"data/config/game.yaml": {Data: []byte("startScene: intro\n")}},
	)
}

func TestNotInitialized(t *testing.T) {
	initialized = false
	defer initTestFS()

	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to be false before Init()")
	}
	if _, err := Open("assets/images/mug.png"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Open before Init: got %v, want ErrNotInitialized", err)
	}
	if _, err := ReadFile("data/config/game.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile before Init: got %v, want ErrNotInitialized", err)
	}
	if Exists("assets/images/mug.png") {
		t.Error("Exists before Init should be false")
	}
}

func TestReadFile(t *testing.T) {
	initTestFS()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"data file", "data/config/game.yaml", "startScene: intro\n", false},
		{"dot slash prefix", "./data/config/game.yaml", "startScene: intro\n", false},
		{"missing file", "assets/images/none.png", "", true},
		{"unknown prefix", "config/game.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOpenAndExists(t *testing.T) {
	initTestFS()

	f, err := Open("assets/images/mug.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "png" {
		t.Errorf("Open content = %q", data)
	}

	if !Exists("assets/images/mug.png") {
		t.Error("Expected mug.png to exist")
	}
	if Exists("assets/images/none.png") {
		t.Error("Expected none.png not to exist")
	}
}
