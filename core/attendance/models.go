package attendance

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

// Attendance statuses
const (
	StatusPresent  = "present"
	StatusAbsent   = "absent"
	StatusLate     = "late"
	StatusExcused  = "excused"
	StatusUnmarked = "unmarked"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusExcused, StatusUnmarked}

// Record is the attendance entry for one (date, class, student) triple.
// At most one record exists per triple; marking again overwrites it.
type Record struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// DatedRecord pairs a record with the ledger date it was recorded under.
type DatedRecord struct {
	Date   core.Date `json:"date"`
	Record Record    `json:"record"`
}

// History summarizes every record of one (class, student) pair.
// Dates on which the pair has no record contribute nothing; in particular an
// unrecorded day is not an absence.
type History struct {
	Present int           `json:"present"`
	Absent  int           `json:"absent"`
	Late    int           `json:"late"`
	Excused int           `json:"excused"`
	Entries []DatedRecord `json:"entries"` // descending by date
}

// Mark contains information needed to record attendance.
type Mark struct {
	Status string `json:"status" validate:"required,attstatus"`
	Note   string `json:"note"`
}

func (m *Mark) Validate(validate *validator.Validate) error {
	m.Status = core.CleanString(m.Status, true /* lower */)
	m.Note = core.CleanString(m.Note)
	return validate.Struct(m)
}

// RegisterValidators registers attendance-specific validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

var (
	statusTag  = "attstatus"
	statusText = "invalid attendance status"
)

func statusValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, status := range Statuses {
		if val == status {
			return true
		}
	}
	return false
}
