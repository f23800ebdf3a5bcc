package workouts

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	msgMissingFields    = "Please fill in all required fields"
	msgInvalidCategory  = "Invalid category. Must be Strength, Cardio, Core, or Flexibility"
	msgInvalidIntensity = "Invalid intensity. Must be Low, Medium, or High"
)

// ValidationError is returned for caller-input errors. EmptyFields lists
// every missing required field so clients can highlight all offending
// form fields at once.
type ValidationError struct {
	Message     string   `json:"error"`
	EmptyFields []string `json:"emptyFields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.EmptyFields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.EmptyFields, ", "))
	}
	return e.Message
}

// Number accepts both JSON numbers and numeric strings,
// since the HTML form inputs submit numbers as text.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number value: %q", s)
	}

	*n = Number(f)
	return nil
}

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD values,
// the latter being what <input type="date"> submits.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date value: %q", s)
}

// CreateWorkoutRequest is the wire shape of a new workout submission.
type CreateWorkoutRequest struct {
	Title         string  `json:"title"`
	Reps          Number  `json:"reps"`
	Sets          Number  `json:"sets"`
	Category      string  `json:"category"`
	Load          *Number `json:"load"`
	Duration      *Number `json:"duration"`
	Intensity     string  `json:"intensity"`
	DatePerformed *Date   `json:"datePerformed"`
	Notes         string  `json:"notes"`
}

// Normalize validates the request and produces a workout ready for
// persistence. It never touches storage. Required fields that are
// missing (or zero, for the numeric ones) are all reported together,
// in a stable order.
func (req *CreateWorkoutRequest) Normalize(now time.Time) (*Workout, error) {
	var emptyFields []string
	if req.Title == "" {
		emptyFields = append(emptyFields, "title")
	}
	if req.Reps <= 0 {
		emptyFields = append(emptyFields, "reps")
	}
	if req.Sets <= 0 {
		emptyFields = append(emptyFields, "sets")
	}
	if req.Category == "" {
		emptyFields = append(emptyFields, "category")
	}
	if len(emptyFields) > 0 {
		return nil, &ValidationError{
			Message:     msgMissingFields,
			EmptyFields: emptyFields,
		}
	}

	if !validCategory(req.Category) {
		return nil, &ValidationError{Message: msgInvalidCategory}
	}
	if req.Intensity != "" && !validIntensity(req.Intensity) {
		return nil, &ValidationError{Message: msgInvalidIntensity}
	}

	workout := &Workout{
		Title:         req.Title,
		Reps:          int(req.Reps),
		Sets:          int(req.Sets),
		Category:      req.Category,
		Notes:         req.Notes,
		DatePerformed: now,
	}
	if req.DatePerformed != nil && !req.DatePerformed.IsZero() {
		workout.DatePerformed = req.DatePerformed.Time
	}

	// optional fields are carried over only when the caller supplied them
	if req.Load != nil {
		load := float64(*req.Load)
		workout.Load = &load
	}
	if req.Duration != nil {
		duration := float64(*req.Duration)
		workout.Duration = &duration
	}
	if req.Intensity != "" {
		workout.Intensity = req.Intensity
	}

	return workout, nil
}

// UpdateWorkoutRequest is the wire shape of a partial update. Every field
// is optional; fields absent from the payload are left untouched on the
// stored record.
type UpdateWorkoutRequest struct {
	Title         *string `json:"title"`
	Reps          *Number `json:"reps"`
	Sets          *Number `json:"sets"`
	Category      *string `json:"category"`
	Load          *Number `json:"load"`
	Duration      *Number `json:"duration"`
	Intensity     *string `json:"intensity"`
	DatePerformed *Date   `json:"datePerformed"`
	Notes         *string `json:"notes"`
}

// Validate checks the enumerated fields when they are present.
// No required-field re-check is done for omitted fields.
func (req *UpdateWorkoutRequest) Validate() error {
	if req.Category != nil && !validCategory(*req.Category) {
		return &ValidationError{Message: msgInvalidCategory}
	}
	if req.Intensity != nil && !validIntensity(*req.Intensity) {
		return &ValidationError{Message: msgInvalidIntensity}
	}
	return nil
}
