package school

import (
	"fmt"
	"net/mail"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	ErrNotFound = errors.New("record not found")

	errUnknownTeacher = "teacher does not exist"
	errUnknownClass   = "class does not exist"
)

// activityFeedCap is the number of most-recent activity entries kept.
const activityFeedCap = 10

type (
	// Repository holds the authoritative Teacher/Class/Student/Assignment/Event
	// collections plus the activity feed.
	Repository interface {
		CreateTeacher(t Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		UpdateTeacher(t Teacher) (Teacher, error)
		DeleteTeachersByID(ids ...string) error

		CreateClass(c Class) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id string) (Class, error)
		UpdateClass(c Class) (Class, error)
		DeleteClassesByID(ids ...string) error

		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		UpdateStudent(s Student, progress *int) (Student, error)
		DeleteStudentsByID(ids ...string) error

		CreateAssignment(a Assignment) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		UpdateAssignment(a Assignment) (Assignment, error)
		DeleteAssignmentsByID(ids ...string) error

		CreateEvent(e Event) (Event, error)
		QueryAllEvents() ([]Event, error)
		GetEventByID(id string) (Event, error)
		DeleteEventsByID(ids ...string) error

		// CreateActivity prepends an entry to the feed, evicting the oldest
		// entries beyond `cap`.
		CreateActivity(a Activity, cap int) error
		QueryActivities() ([]Activity, error)
	}

	Service struct {
		conf    *core.Config
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(conf *core.Config, repo Repository, mailSvc core.EmailService) *Service {
	return &Service{
		conf:    conf,
		repo:    repo,
		mailSvc: mailSvc,
	}
}

// Teachers

func (svc *Service) AddTeacher(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	t := Teacher{
		Name:      nt.Name,
		Subject:   nt.Subject,
		Email:     nt.Email,
		Phone:     nt.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t, err := svc.repo.CreateTeacher(t)
	if err != nil {
		return Teacher{}, err
	}
	svc.logActivity(fmt.Sprintf("New teacher %s added", t.Name), "teacher")
	return t, nil
}

func (svc *Service) QueryTeachers(preds ...Predicate[Teacher]) ([]Teacher, error) {
	teachers, err := svc.repo.QueryAllTeachers()
	if err != nil {
		return nil, err
	}
	return Apply(teachers, preds...), nil
}

func (svc *Service) GetTeacherByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) UpdateTeacher(id string, utc UpdateTeacher) (Teacher, error) {
	return svc.repo.UpdateTeacher(Teacher{
		ID:        id,
		Name:      utc.Name,
		Subject:   utc.Subject,
		Email:     utc.Email,
		Phone:     utc.Phone,
		UpdatedAt: time.Now().UTC(),
	})
}

func (svc *Service) DeleteTeachers(ids ...string) error {
	return svc.repo.DeleteTeachersByID(ids...)
}

// Classes

func (svc *Service) AddClass(nc NewClass) (Class, error) {
	if err := svc.checkTeacherRef(nc.TeacherID); err != nil {
		return Class{}, err
	}

	now := time.Now().UTC()
	c := Class{
		Name:      nc.Name,
		TeacherID: nc.TeacherID,
		Room:      nc.Room,
		Schedule:  nc.Schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c, err := svc.repo.CreateClass(c)
	if err != nil {
		return Class{}, err
	}
	svc.logActivity(fmt.Sprintf("New class %s created", c.Name), "class")
	return c, nil
}

func (svc *Service) QueryClasses() ([]Class, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) GetClassByID(id string) (Class, error) {
	return svc.repo.GetClassByID(id)
}

func (svc *Service) UpdateClass(id string, uc UpdateClass) (Class, error) {
	return svc.repo.UpdateClass(Class{
		ID:        id,
		Name:      uc.Name,
		TeacherID: uc.TeacherID,
		Room:      uc.Room,
		Schedule:  uc.Schedule,
		UpdatedAt: time.Now().UTC(),
	})
}

func (svc *Service) DeleteClasses(ids ...string) error {
	return svc.repo.DeleteClassesByID(ids...)
}

// Students

func (svc *Service) AddStudent(ns NewStudent) (Student, error) {
	if err := svc.checkClassRef(ns.ClassID); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	s := Student{
		Name:        ns.Name,
		Email:       ns.Email,
		ParentEmail: ns.ParentEmail,
		ClassID:     ns.ClassID,
		Status:      ns.Status,
		Progress:    ns.Progress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s, err := svc.repo.CreateStudent(s)
	if err != nil {
		return Student{}, err
	}
	svc.logActivity(fmt.Sprintf("New student %s enrolled", s.Name), "student")
	return s, nil
}

// AddStudentsBulk enrolls pre-validated students into classID and returns the
// number added. A single feed entry covers the whole batch.
func (svc *Service) AddStudentsBulk(classID string, newStudents []NewStudent) (int, error) {
	if err := svc.checkClassRef(classID); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	var added int
	for _, ns := range newStudents {
		s := Student{
			Name:        ns.Name,
			Email:       ns.Email,
			ParentEmail: ns.ParentEmail,
			ClassID:     classID,
			Status:      StatusActive,
			Progress:    ns.Progress,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := svc.repo.CreateStudent(s); err != nil {
			return added, errors.Wrapf(err, "creating student %q", ns.Name)
		}
		added++
	}
	if added > 0 {
		svc.logActivity(fmt.Sprintf("%d students imported", added), "student")
	}
	return added, nil
}

func (svc *Service) QueryStudents(preds ...Predicate[Student]) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	return Apply(students, preds...), nil
}

func (svc *Service) GetStudentByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) UpdateStudent(id string, us UpdateStudent) (Student, error) {
	return svc.repo.UpdateStudent(Student{
		ID:          id,
		Name:        us.Name,
		Email:       us.Email,
		ParentEmail: us.ParentEmail,
		ClassID:     us.ClassID,
		Status:      us.Status,
		UpdatedAt:   time.Now().UTC(),
	}, us.Progress)
}

func (svc *Service) UpdateStudentMemorization(id string, um UpdateMemorization) (Student, error) {
	s, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	s.Memorization = Memorization{Surah: um.Surah, Ayah: um.Ayah, Juz: um.Juz}
	s.UpdatedAt = time.Now().UTC()
	s, err = svc.repo.UpdateStudent(s, nil)
	if err != nil {
		return Student{}, err
	}
	svc.logActivity(fmt.Sprintf("%s reached %s ayah %d", s.Name, um.Surah, um.Ayah), "memorization")
	return s, nil
}

func (svc *Service) DeleteStudents(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}

// Assignments

func (svc *Service) AddAssignment(na NewAssignment) (Assignment, error) {
	if err := svc.checkClassRef(na.ClassID); err != nil {
		return Assignment{}, err
	}

	now := time.Now().UTC()
	a := Assignment{
		ClassID:     na.ClassID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	a, err := svc.repo.CreateAssignment(a)
	if err != nil {
		return Assignment{}, err
	}
	svc.logActivity(fmt.Sprintf("Assignment %q posted", a.Title), "assignment")
	svc.notifyClass(a)
	return a, nil
}

func (svc *Service) QueryAssignments(preds ...Predicate[Assignment]) ([]Assignment, error) {
	assignments, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}
	return Apply(assignments, preds...), nil
}

func (svc *Service) GetAssignmentByID(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *Service) UpdateAssignment(id string, ua UpdateAssignment) (Assignment, error) {
	return svc.repo.UpdateAssignment(Assignment{
		ID:          id,
		Title:       ua.Title,
		Description: ua.Description,
		DueDate:     ua.DueDate,
		UpdatedAt:   time.Now().UTC(),
	})
}

func (svc *Service) DeleteAssignments(ids ...string) error {
	return svc.repo.DeleteAssignmentsByID(ids...)
}

// Events

func (svc *Service) AddEvent(ne NewEvent) (Event, error) {
	date, err := core.ParseDate(ne.Date)
	if err != nil {
		return Event{}, err
	}
	e := Event{
		Title:     ne.Title,
		Date:      date,
		Time:      ne.Time,
		Type:      ne.Type,
		CreatedAt: time.Now().UTC(),
	}
	e, err = svc.repo.CreateEvent(e)
	if err != nil {
		return Event{}, err
	}
	svc.logActivity(fmt.Sprintf("Event %q scheduled for %s", e.Title, e.Date), "event")
	return e, nil
}

func (svc *Service) QueryEvents() ([]Event, error) {
	return svc.repo.QueryAllEvents()
}

func (svc *Service) GetEventByID(id string) (Event, error) {
	return svc.repo.GetEventByID(id)
}

func (svc *Service) DeleteEvents(ids ...string) error {
	return svc.repo.DeleteEventsByID(ids...)
}

// Stats derives the dashboard counts from the live collections.
// Values are recomputed on every call, never cached.
func (svc *Service) Stats() (Stats, error) {
	teachers, err := svc.repo.QueryAllTeachers()
	if err != nil {
		return Stats{}, err
	}
	classes, err := svc.repo.QueryAllClasses()
	if err != nil {
		return Stats{}, err
	}
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalTeachers: len(teachers),
		TotalClasses:  len(classes),
		TotalStudents: len(students),
	}
	var progressSum int
	for _, s := range students {
		if s.Status == StatusActive {
			stats.ActiveStudents++
		}
		progressSum += s.Progress
	}
	if len(students) > 0 {
		stats.AvgProgress = float64(progressSum) / float64(len(students))
	}
	return stats, nil
}

func (svc *Service) Activities() ([]Activity, error) {
	return svc.repo.QueryActivities()
}

func (svc *Service) logActivity(text, typ string) {
	a := Activity{
		Text:      text,
		Time:      "Just now",
		Type:      typ,
		Timestamp: time.Now().UTC(),
	}
	// feed trouble must never fail the mutation that triggered it
	_ = svc.repo.CreateActivity(a, activityFeedCap)
}

// notifyClass emails every student of the assignment's class that has an email
// address on file.
func (svc *Service) notifyClass(a Assignment) {
	students, err := svc.QueryStudents(StudentInClass(a.ClassID), StudentHasStatus(StatusActive))
	if err != nil {
		return
	}

	var recipients []mail.Address
	for _, s := range students {
		if s.Email != "" {
			recipients = append(recipients, mail.Address{Name: s.Name, Address: s.Email})
		}
	}
	if len(recipients) == 0 {
		return
	}

	body := fmt.Sprintf("A new assignment %q has been posted for your class.", a.Title)
	if !a.DueDate.IsZero() {
		body += fmt.Sprintf(" It is due on %s.", a.DueDate)
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		Bcc:     recipients,
		Subject: "New assignment: " + a.Title,
		BodyStr: body,
	})
}

func (svc *Service) checkTeacherRef(teacherID string) error {
	if _, err := svc.repo.GetTeacherByID(teacherID); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "teacher_id", Error: errUnknownTeacher})
		}
		return err
	}
	return nil
}

func (svc *Service) checkClassRef(classID string) error {
	if _, err := svc.repo.GetClassByID(classID); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "class_id", Error: errUnknownClass})
		}
		return err
	}
	return nil
}

// RegisterValidators registers school-specific validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(studentStatusTag, studentStatusValidation)
	core.RegisterCustomTranslation(validate, translator, studentStatusTag, studentStatusText)
}

var (
	studentStatusTag  = "studentstatus"
	studentStatusText = "invalid student status"
)

func studentStatusValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, status := range studentStatuses {
		if val == status {
			return true
		}
	}
	return false
}
