package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email       string
	displayName string
	password    string
	verified    bool
	sessionID   string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:       fmt.Sprintf("testuser_%s@example.com", suffix),
		displayName: fmt.Sprintf("testuser_%s", suffix),
		password:    "testpassword123",
		verified:    true,
		sessionID:   uuid.New().String(),
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// Email exposes the (possibly generated) email for login round trips
func (b *UserBuilder) Email() string {
	return b.email
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Unverified marks the user as not yet email-verified
func (b *UserBuilder) Unverified() *UserBuilder {
	b.verified = false
	return b
}

// WithSessionID pins the fencing session ID
func (b *UserBuilder) WithSessionID(sessionID string) *UserBuilder {
	b.sessionID = sessionID
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		SessionID:    b.sessionID,
		IsVerified:   b.verified,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates a user directly, then logs in via the API and
// returns the user together with the accessToken cookie value.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"email":    b.email,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	token := ""
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "accessToken" {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatal("login response carried no accessToken cookie")
	}

	return user, token
}

// ClassroomBuilder creates test classrooms
type ClassroomBuilder struct {
	owner    *domain.User
	name     string
	joinCode string
	status   domain.ClassroomStatus
}

// NewClassroomBuilder creates a new ClassroomBuilder with default values
func NewClassroomBuilder() *ClassroomBuilder {
	return &ClassroomBuilder{
		name:     fmt.Sprintf("Classroom %s", uuid.New().String()[:6]),
		joinCode: generateJoinCode(),
		status:   domain.ClassroomStatusActive,
	}
}

// WithOwner sets the classroom owner
func (b *ClassroomBuilder) WithOwner(user *domain.User) *ClassroomBuilder {
	b.owner = user
	return b
}

// WithName sets the classroom name
func (b *ClassroomBuilder) WithName(name string) *ClassroomBuilder {
	b.name = name
	return b
}

// Archived marks the classroom archived
func (b *ClassroomBuilder) Archived() *ClassroomBuilder {
	b.status = domain.ClassroomStatusArchived
	return b
}

// Build creates the classroom in the database
func (b *ClassroomBuilder) Build(t *testing.T, db *gorm.DB) *domain.Classroom {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	classroom := &domain.Classroom{
		ID:       uuid.New(),
		JoinCode: b.joinCode,
		Name:     b.name,
		OwnerID:  b.owner.ID,
		Status:   b.status,
	}

	if err := db.Create(classroom).Error; err != nil {
		t.Fatalf("failed to create classroom: %v", err)
	}

	return classroom
}

// AddMember enrolls a user into the classroom
func AddMember(t *testing.T, db *gorm.DB, classroom *domain.Classroom, user *domain.User) {
	t.Helper()

	member := &domain.ClassroomMember{
		ID:          uuid.New(),
		ClassroomID: classroom.ID,
		UserID:      user.ID,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to enroll member: %v", err)
	}
}

func generateJoinCode() string {
	return uuid.New().String()[:6]
}

// CourseBuilder creates test courses
type CourseBuilder struct {
	author    *domain.User
	title     string
	script    domain.Script
	status    domain.CourseStatus
	isPremium bool
}

// NewCourseBuilder creates a new CourseBuilder with default values
func NewCourseBuilder() *CourseBuilder {
	return &CourseBuilder{
		title:  fmt.Sprintf("Course %s", uuid.New().String()[:6]),
		script: domain.ScriptLatinPrint,
		status: domain.CourseStatusPublished,
	}
}

// WithAuthor sets the course author
func (b *CourseBuilder) WithAuthor(user *domain.User) *CourseBuilder {
	b.author = user
	return b
}

// WithTitle sets the course title
func (b *CourseBuilder) WithTitle(title string) *CourseBuilder {
	b.title = title
	return b
}

// WithScript sets the script the course teaches
func (b *CourseBuilder) WithScript(script domain.Script) *CourseBuilder {
	b.script = script
	return b
}

// Draft leaves the course unpublished
func (b *CourseBuilder) Draft() *CourseBuilder {
	b.status = domain.CourseStatusDraft
	return b
}

// Premium gates the course behind an active subscription
func (b *CourseBuilder) Premium() *CourseBuilder {
	b.isPremium = true
	return b
}

// Build creates the course in the database
func (b *CourseBuilder) Build(t *testing.T, db *gorm.DB) *domain.Course {
	t.Helper()

	if b.author == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.author = user
	}

	course := &domain.Course{
		ID:        uuid.New(),
		Title:     b.title,
		Script:    b.script,
		AuthorID:  b.author.ID,
		Status:    b.status,
		IsPremium: b.isPremium,
	}
	if b.status == domain.CourseStatusPublished {
		now := time.Now()
		course.PublishedAt = &now
	}

	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	return course
}

// AddLesson appends a lesson to the course
func AddLesson(t *testing.T, db *gorm.DB, course *domain.Course, title string, position int) *domain.Lesson {
	t.Helper()

	lesson := &domain.Lesson{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    title,
		Position: position,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("failed to create lesson: %v", err)
	}
	return lesson
}

// CreatePracticeSet stores a practice set under a lesson with a minimal template
func CreatePracticeSet(t *testing.T, db *gorm.DB, lesson *domain.Lesson, author *domain.User) *domain.PracticeSet {
	t.Helper()

	template, _ := json.Marshal(map[string]any{
		"glyphs":    []string{"a", "b", "c"},
		"guideline": "seyes",
	})
	set := &domain.PracticeSet{
		ID:       uuid.New(),
		LessonID: lesson.ID,
		AuthorID: author.ID,
		Title:    "Lowercase warmup",
		Template: datatypes.JSON(template),
	}
	if err := db.Create(set).Error; err != nil {
		t.Fatalf("failed to create practice set: %v", err)
	}
	return set
}

// PlanBuilder creates subscription plans
type PlanBuilder struct {
	name         string
	priceCents   int
	durationDays int
}

// NewPlanBuilder creates a new PlanBuilder with default values
func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{
		name:         fmt.Sprintf("plan-%s", uuid.New().String()[:6]),
		priceCents:   999,
		durationDays: 30,
	}
}

// WithPrice sets the plan price in cents
func (b *PlanBuilder) WithPrice(cents int) *PlanBuilder {
	b.priceCents = cents
	return b
}

// WithDuration sets the subscription window length in days
func (b *PlanBuilder) WithDuration(days int) *PlanBuilder {
	b.durationDays = days
	return b
}

// Build creates the plan in the database
func (b *PlanBuilder) Build(t *testing.T, db *gorm.DB) *domain.Plan {
	t.Helper()

	plan := &domain.Plan{
		ID:           uuid.New(),
		Name:         b.name,
		PriceCents:   b.priceCents,
		Currency:     "USD",
		DurationDays: b.durationDays,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create plan: %v", err)
	}
	return plan
}

// CreateAuthenticatedRequest creates an HTTP request carrying the auth cookie
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}

	return req
}
