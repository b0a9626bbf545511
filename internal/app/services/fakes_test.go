package services

import (
	"context"

	"github.com/mdemir/coursedesk/internal/app/models"
	"github.com/mdemir/coursedesk/internal/pkg/apperrors"
)

// fakeStore is an in-memory implementation of every store interface,
// mirroring the semantics of the PostgreSQL repositories: row-level
// joins and drops, version counters with compare-and-set writes, and
// one ledger per course.
type fakeStore struct {
	courses     map[int64]*models.Course
	professors  map[int64]*models.Professor
	students    map[int64]*models.Student
	ledgers     map[int64]*models.GradeLedger // keyed by course id
	notes       map[int64]*models.Note
	enrollments map[int64]map[int64]bool // courseID -> studentID -> active

	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courses:     make(map[int64]*models.Course),
		professors:  make(map[int64]*models.Professor),
		students:    make(map[int64]*models.Student),
		ledgers:     make(map[int64]*models.GradeLedger),
		notes:       make(map[int64]*models.Note),
		enrollments: make(map[int64]map[int64]bool),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addProfessor(name, role string) *models.Professor {
	p := &models.Professor{ID: f.id(), Username: name, Name: name, Department: "CS", Role: role}
	f.professors[p.ID] = p
	return p
}

func (f *fakeStore) addStudent(name string) *models.Student {
	st := &models.Student{ID: f.id(), Username: name, Name: name}
	f.students[st.ID] = st
	return st
}

func (f *fakeStore) addCourse(name string, professorID int64) *models.Course {
	c := &models.Course{
		ID: f.id(), Department: "CS", Semester: "fall", Year: 2026,
		Name: name, ProfessorID: professorID, Version: 1,
	}
	f.courses[c.ID] = c
	f.enrollments[c.ID] = make(map[int64]bool)
	return c
}

// --- CourseStore ---

func (f *fakeStore) Create(ctx context.Context, course *models.Course) error {
	course.ID = f.id()
	course.Version = 1
	f.courses[course.ID] = course
	f.enrollments[course.ID] = make(map[int64]bool)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ExistsDuplicate(ctx context.Context, department, name, semester string, year int, professorID int64) (bool, error) {
	for _, c := range f.courses {
		if c.Department == department && c.Name == name && c.Semester == semester &&
			c.Year == year && c.ProfessorID == professorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListByProfessor(ctx context.Context, professorID int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if c.ProfessorID == professorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListWithJoined(ctx context.Context, studentID int64) ([]*models.CourseListing, error) {
	var out []*models.CourseListing
	for _, c := range f.courses {
		out = append(out, &models.CourseListing{
			ID: c.ID, Department: c.Department, Semester: c.Semester,
			Year: c.Year, Name: c.Name, Joined: f.enrollments[c.ID][studentID],
		})
	}
	return out, nil
}

func (f *fakeStore) ListJoined(ctx context.Context, studentID int64) ([]*models.CourseListing, error) {
	all, _ := f.ListWithJoined(ctx, studentID)
	var out []*models.CourseListing
	for _, l := range all {
		if l.Joined {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) RosterStudents(ctx context.Context, courseID int64) ([]*models.Student, error) {
	var out []*models.Student
	for sid, active := range f.enrollments[courseID] {
		if active {
			out = append(out, f.students[sid])
		}
	}
	return out, nil
}

func (f *fakeStore) SetRoster(ctx context.Context, courseID int64, studentIDs []int64, version int64) error {
	c, ok := f.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if c.Version != version {
		return apperrors.ErrStaleVersion
	}
	c.Version++

	rows := f.enrollments[courseID]
	for sid := range rows {
		rows[sid] = false
	}
	for _, sid := range studentIDs {
		rows[sid] = true
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if _, ok := f.ledgers[id]; ok {
		return apperrors.ErrCourseHasGrades
	}
	delete(f.courses, id)
	delete(f.enrollments, id)
	return nil
}

// --- EnrollmentStore ---

func (f *fakeStore) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	return f.enrollments[courseID][studentID], nil
}

func (f *fakeStore) EverEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	_, ok := f.enrollments[courseID][studentID]
	return ok, nil
}

func (f *fakeStore) Join(ctx context.Context, courseID, studentID int64) error {
	c, ok := f.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if f.enrollments[courseID][studentID] {
		return apperrors.ErrAlreadyEnrolled
	}
	f.enrollments[courseID][studentID] = true
	c.Version++
	return nil
}

func (f *fakeStore) Drop(ctx context.Context, courseID, studentID int64) error {
	c, ok := f.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if !f.enrollments[courseID][studentID] {
		return apperrors.ErrNotEnrolled
	}
	f.enrollments[courseID][studentID] = false
	c.Version++
	return nil
}

// fakeGrades, fakeProfessors, fakeStudents and fakeNotes wrap the
// shared fakeStore so store interfaces with clashing method names can
// coexist on one state.
type fakeGrades struct{ *fakeStore }

// --- GradeStore ---

func (g fakeGrades) GetByCourse(ctx context.Context, courseID int64) (*models.GradeLedger, error) {
	l, ok := g.ledgers[courseID]
	if !ok {
		return nil, apperrors.ErrLedgerNotFound
	}
	cp := *l
	cp.Marks = append([]*models.MarkRow(nil), l.Marks...)
	for _, m := range cp.Marks {
		m.Enrolled = g.enrollments[courseID][m.StudentID]
	}
	return &cp, nil
}

func (g fakeGrades) ExistsForCourse(ctx context.Context, courseID int64) (bool, error) {
	_, ok := g.ledgers[courseID]
	return ok, nil
}

func (g fakeGrades) Create(ctx context.Context, ledger *models.GradeLedger) error {
	if _, ok := g.ledgers[ledger.CourseID]; ok {
		return apperrors.ErrLedgerAlreadyExists
	}
	ledger.ID = g.id()
	ledger.Version = 1
	cp := *ledger
	g.ledgers[ledger.CourseID] = &cp
	return nil
}

func (g fakeGrades) Replace(ctx context.Context, ledgerID, version int64, marks []*models.MarkRow) error {
	for _, l := range g.ledgers {
		if l.ID != ledgerID {
			continue
		}
		if l.Version != version {
			return apperrors.ErrStaleVersion
		}
		l.Version++
		l.Marks = marks
		return nil
	}
	return apperrors.ErrLedgerNotFound
}

func (g fakeGrades) Delete(ctx context.Context, courseID int64) error {
	if _, ok := g.ledgers[courseID]; !ok {
		return apperrors.ErrLedgerNotFound
	}
	delete(g.ledgers, courseID)
	return nil
}

func (g fakeGrades) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentMark, error) {
	var out []*models.StudentMark
	for courseID, l := range g.ledgers {
		for _, m := range l.Marks {
			if m.StudentID == studentID {
				out = append(out, &models.StudentMark{
					CourseID:   courseID,
					CourseName: g.courses[courseID].Name,
					Row:        *m,
				})
			}
		}
	}
	return out, nil
}

// --- ProfessorStore ---

type fakeProfessors struct{ *fakeStore }

func (p fakeProfessors) Create(ctx context.Context, professor *models.Professor) error {
	for _, existing := range p.professors {
		if existing.Username == professor.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	professor.ID = p.id()
	p.professors[professor.ID] = professor
	return nil
}

func (p fakeProfessors) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	prof, ok := p.professors[id]
	if !ok {
		return nil, apperrors.ErrProfessorNotFound
	}
	return prof, nil
}

func (p fakeProfessors) GetByUsername(ctx context.Context, username string) (*models.Professor, error) {
	for _, prof := range p.professors {
		if prof.Username == username {
			return prof, nil
		}
	}
	return nil, apperrors.ErrProfessorNotFound
}

func (p fakeProfessors) ListPendingByDepartment(ctx context.Context, department string) ([]*models.Professor, error) {
	var out []*models.Professor
	for _, prof := range p.professors {
		if prof.Department == department && prof.Role == "" {
			out = append(out, prof)
		}
	}
	return out, nil
}

func (p fakeProfessors) ListNamesByDepartment(ctx context.Context, department string) ([]*models.Professor, error) {
	var out []*models.Professor
	for _, prof := range p.professors {
		if prof.Department == department {
			out = append(out, &models.Professor{ID: prof.ID, Name: prof.Name})
		}
	}
	return out, nil
}

func (p fakeProfessors) UpdateRole(ctx context.Context, id int64, role string) error {
	prof, ok := p.professors[id]
	if !ok {
		return apperrors.ErrProfessorNotFound
	}
	prof.Role = role
	return nil
}

func (p fakeProfessors) Delete(ctx context.Context, id int64) error {
	if _, ok := p.professors[id]; !ok {
		return apperrors.ErrProfessorNotFound
	}
	delete(p.professors, id)
	return nil
}

// --- StudentStore ---

type fakeStudents struct{ *fakeStore }

func (s fakeStudents) Create(ctx context.Context, student *models.Student) error {
	for _, existing := range s.students {
		if existing.Username == student.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	student.ID = s.id()
	s.students[student.ID] = student
	return nil
}

func (s fakeStudents) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return st, nil
}

func (s fakeStudents) GetByUsername(ctx context.Context, username string) (*models.Student, error) {
	for _, st := range s.students {
		if st.Username == username {
			return st, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s fakeStudents) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	var missing []int64
	for _, id := range ids {
		if _, ok := s.students[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// --- NoteStore ---

type fakeNotes struct{ *fakeStore }

func (n fakeNotes) ListByCourse(ctx context.Context, courseID int64) ([]*models.Note, error) {
	var out []*models.Note
	for _, note := range n.notes {
		if note.CourseID == courseID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (n fakeNotes) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	note, ok := n.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return note, nil
}

func (n fakeNotes) ExistsDuplicate(ctx context.Context, courseID int64, title, body string) (bool, error) {
	for _, note := range n.notes {
		if note.CourseID == courseID && note.Title == title && note.Body == body {
			return true, nil
		}
	}
	return false, nil
}

func (n fakeNotes) Create(ctx context.Context, note *models.Note) error {
	note.ID = n.id()
	n.notes[note.ID] = note
	return nil
}

func (n fakeNotes) Update(ctx context.Context, id int64, title, body string) error {
	note, ok := n.notes[id]
	if !ok {
		return apperrors.ErrNoteNotFound
	}
	note.Title = title
	note.Body = body
	return nil
}

func (n fakeNotes) Delete(ctx context.Context, id int64) error {
	if _, ok := n.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(n.notes, id)
	return nil
}
