package shellforge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the request before any geometry work. It returns a
// ValidationErrors listing every field problem found, or nil.
func Validate(req *Request) error {
	var errs ValidationErrors
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, FieldError{
				Field: fieldPath(fe.Namespace()),
				Msg:   tagMessage(fe),
			})
		}
	}
	errs = append(errs, crossFieldChecks(req)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// crossFieldChecks covers constraints validator tags cannot express.
func crossFieldChecks(req *Request) (errs ValidationErrors) {
	ids := make(map[int]bool, len(req.Components))
	for i, c := range req.Components {
		if ids[c.ID] {
			errs = append(errs, FieldError{
				Field: fmt.Sprintf("components[%d].id", i),
				Msg:   fmt.Sprintf("duplicate component id %d", c.ID),
			})
		}
		ids[c.ID] = true
		if c.IsPCB && c.PCBScrewDiameter <= 0 {
			errs = append(errs, FieldError{
				Field: fmt.Sprintf("components[%d].pcb_screw_diameter", i),
				Msg:   "must be > 0 for a PCB component",
			})
		}
	}
	for i, c := range req.Cutouts {
		if c.Shape != CutoutCircle && c.Height <= 0 {
			errs = append(errs, FieldError{
				Field: fmt.Sprintf("cutouts[%d].height", i),
				Msg:   "must be > 0 for non-circular cutouts",
			})
		}
	}
	if req.Parts.Tray.Enabled && req.Parts.Tray.TrayThickness <= 0 {
		errs = append(errs, FieldError{
			Field: "parts.tray.tray_thickness",
			Msg:   "must be > 0 when the tray is enabled",
		})
	}
	if req.Parts.Bracket.Enabled && req.Parts.Bracket.BracketHoleDiameter <= 0 {
		errs = append(errs, FieldError{
			Field: "parts.bracket.bracket_hole_diameter",
			Msg:   "must be > 0 when the bracket is enabled",
		})
	}
	return errs
}

// fieldPath strips the root struct name from a validator namespace,
// Request.Components[0].Width -> components[0].width.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " entries"
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}
