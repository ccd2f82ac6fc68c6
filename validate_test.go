package shellforge

import (
	"strings"
	"testing"
)

func TestValidateEmptyComponents(t *testing.T) {
	req := Request{Config: DefaultEnclosureConfig()}
	err := Validate(&req)
	if err == nil {
		t.Fatal("empty component set accepted")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if len(verrs) == 0 || !strings.Contains(verrs[0].Field, "components") {
		t.Errorf("errors: %v", verrs)
	}
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	req := scenarioRequest()
	req.Components[0].Width = -1
	req.Components[0].Height = 0
	req.Config.WallThickness = -2
	err := Validate(&req)
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("error type %T: %v", err, err)
	}
	if len(verrs) < 3 {
		t.Errorf("got %d errors, want at least 3: %v", len(verrs), verrs)
	}
	for _, fe := range verrs {
		if strings.Contains(fe.Field, "Request.") {
			t.Errorf("field path not normalized: %q", fe.Field)
		}
	}
}

func TestValidateDuplicateComponentIDs(t *testing.T) {
	req := scenarioRequest()
	c := req.Components[0]
	req.Components = append(req.Components, c)
	err := Validate(&req)
	if err == nil {
		t.Fatal("duplicate component ids accepted")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error: %v", err)
	}
}

func TestValidatePCBScrewDiameter(t *testing.T) {
	req := scenarioRequest()
	req.Components[0].PCBScrewDiameter = 0
	if err := Validate(&req); err == nil {
		t.Fatal("pcb without screw diameter accepted")
	}
	req.Components[0].IsPCB = false
	if err := Validate(&req); err != nil {
		t.Errorf("non-pcb component rejected: %v", err)
	}
}

func TestValidateCutoutHeight(t *testing.T) {
	req := scenarioRequest()
	req.Cutouts = []CustomCutout{{ID: 1, Shape: CutoutRect, Face: FaceFront, Width: 8}}
	if err := Validate(&req); err == nil {
		t.Fatal("rectangle cutout without height accepted")
	}
	req.Cutouts[0].Shape = CutoutCircle
	if err := Validate(&req); err != nil {
		t.Errorf("circle without height rejected: %v", err)
	}
}

func TestValidateEnabledParts(t *testing.T) {
	req := scenarioRequest()
	req.Parts.Tray.Enabled = true
	if err := Validate(&req); err == nil {
		t.Fatal("enabled tray without thickness accepted")
	}
	req.Parts.Tray = PartConfig{}
	req.Parts.Bracket.Enabled = true
	if err := Validate(&req); err == nil {
		t.Fatal("enabled bracket without hole diameter accepted")
	}
}
