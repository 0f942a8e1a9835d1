package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

// Student statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusGraduated = "graduated"
)

var studentStatuses = []string{StatusActive, StatusInactive, StatusGraduated}

// Event types
const (
	EventTypeExam     = "exam"
	EventTypeHoliday  = "holiday"
	EventTypeMeeting  = "meeting"
	EventTypeActivity = "activity"
)

type Teacher struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type Class struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TeacherID string    `json:"teacher_id"`
	Room      string    `json:"room"`
	Schedule  string    `json:"schedule"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type Student struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	ParentEmail  string       `json:"parent_email"`
	ClassID      string       `json:"class_id"`
	Status       string       `json:"status"`
	Progress     int          `json:"progress"` // 0 - 100
	Memorization Memorization `json:"memorization"`
	CreatedAt    time.Time    `json:"created_at"` // UTC
	UpdatedAt    time.Time    `json:"updated_at"` // UTC
}

// Memorization tracks a student's Quran-memorization position.
type Memorization struct {
	Surah string `json:"surah"`
	Ayah  int    `json:"ayah"`
	Juz   int    `json:"juz"`
}

type Assignment struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     core.Date `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// Event is a dated school-wide calendar event.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      core.Date `json:"date"`
	Time      string    `json:"time"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Activity is one human-readable entry of the dashboard activity feed.
type Activity struct {
	Text      string    `json:"text"`
	Time      string    `json:"time"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"` // UTC
}

// Stats are derived dashboard counts, recomputed on demand and never cached.
type Stats struct {
	TotalTeachers  int     `json:"total_teachers"`
	TotalClasses   int     `json:"total_classes"`
	TotalStudents  int     `json:"total_students"`
	ActiveStudents int     `json:"active_students"`
	AvgProgress    float64 `json:"avg_progress"`
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	return validate.Struct(nt)
}

// NewClass contains information needed to create a new Class.
// TeacherID must reference an existing Teacher.
type NewClass struct {
	Name      string `json:"name" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
	Room      string `json:"room"`
	Schedule  string `json:"schedule"`
}

func (nc *NewClass) Validate(validate *validator.Validate, svc *Service) error {
	nc.Name = core.CleanString(nc.Name)
	if err := validate.Struct(nc); err != nil {
		return err
	}
	return svc.checkTeacherRef(nc.TeacherID)
}

// NewStudent contains information needed to create a new Student.
// ClassID must reference an existing Class.
type NewStudent struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	ParentEmail string `json:"parent_email" validate:"omitempty,email"`
	ClassID     string `json:"class_id" validate:"required"`
	Status      string `json:"status" validate:"omitempty,studentstatus"`
	Progress    int    `json:"progress" validate:"min=0,max=100"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkClassRef(ns.ClassID)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
// Empty fields are left unchanged.
type UpdateTeacher struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Subject = core.CleanString(ut.Subject)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	return validate.Struct(ut)
}

// UpdateClass defines what information may be provided to modify an existing Class.
type UpdateClass struct {
	Name      string `json:"name"`
	TeacherID string `json:"teacher_id"`
	Room      string `json:"room"`
	Schedule  string `json:"schedule"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate, svc *Service) error {
	uc.Name = core.CleanString(uc.Name)
	if err := validate.Struct(uc); err != nil {
		return err
	}
	if uc.TeacherID != "" {
		return svc.checkTeacherRef(uc.TeacherID)
	}
	return nil
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	ParentEmail string `json:"parent_email" validate:"omitempty,email"`
	ClassID     string `json:"class_id"`
	Status      string `json:"status" validate:"omitempty,studentstatus"`
	Progress    *int   `json:"progress" validate:"omitempty,min=0,max=100"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, svc *Service) error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.ParentEmail = core.CleanString(us.ParentEmail, true /* lower */)
	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.ClassID != "" {
		return svc.checkClassRef(us.ClassID)
	}
	return nil
}

// UpdateMemorization moves a student's Quran-memorization position.
type UpdateMemorization struct {
	Surah string `json:"surah" validate:"required"`
	Ayah  int    `json:"ayah" validate:"required,min=1"`
	Juz   int    `json:"juz" validate:"required,min=1,max=30"`
}

func (um *UpdateMemorization) Validate(validate *validator.Validate) error {
	um.Surah = core.CleanString(um.Surah)
	return validate.Struct(um)
}

// NewAssignment contains information needed to create a new Assignment.
// ClassID must reference an existing Class.
type NewAssignment struct {
	ClassID     string    `json:"class_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueDate     core.Date `json:"due_date"`
}

func (na *NewAssignment) Validate(validate *validator.Validate, svc *Service) error {
	na.Title = core.CleanString(na.Title)
	if err := validate.Struct(na); err != nil {
		return err
	}
	return svc.checkClassRef(na.ClassID)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
type UpdateAssignment struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     core.Date `json:"due_date"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	ua.Title = core.CleanString(ua.Title)
	return validate.Struct(ua)
}

// NewEvent contains information needed to create a new calendar Event.
type NewEvent struct {
	Title string `json:"title" validate:"required"`
	Date  string `json:"date" validate:"required,date_"`
	Time  string `json:"time"`
	Type  string `json:"type"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	if ne.Type == "" {
		ne.Type = EventTypeActivity
	}
	return validate.Struct(ne)
}
