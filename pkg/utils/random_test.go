package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Fatal("IDs must be unique")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateID() = %q is not a UUID: %v", a, err)
	}
}

func TestStringToSeed(t *testing.T) {
	if StringToSeed("alpha") != StringToSeed("alpha") {
		t.Error("seed must be stable")
	}
	if StringToSeed("alpha") == StringToSeed("beta") {
		t.Error("different strings should give different seeds")
	}
}
