package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitlyhq/fitly-backend/auth"
	"github.com/fitlyhq/fitly-backend/models"
	"github.com/fitlyhq/fitly-backend/store"
)

// memUsers is an in-memory stand-in for the Mongo user store.
type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUsers() *memUsers { return &memUsers{users: make(map[string]models.User)} }

func (m *memUsers) Create(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return models.User{}, store.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = user
	return user, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (m *memUsers) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, user := range m.users {
		if user.ID.Hex() != id {
			continue
		}
		if upd.FullName != nil {
			user.FullName = *upd.FullName
		}
		if upd.Gender != nil {
			user.Gender = *upd.Gender
		}
		if upd.Age != nil {
			user.Age = upd.Age
		}
		if upd.Height != nil {
			user.Height = upd.Height
		}
		if upd.Weight != nil {
			user.Weight = upd.Weight
		}
		if upd.Birthday != nil {
			user.Birthday = *upd.Birthday
		}
		if upd.ProfileImage != nil {
			user.ProfileImage = *upd.ProfileImage
		}
		m.users[email] = user
		return user, nil
	}
	return models.User{}, store.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return store.ErrNotFound
	}
	user.Password = passwordHash
	m.users[email] = user
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, user := range m.users {
		if user.ID.Hex() == id {
			delete(m.users, email)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

type memMailer struct {
	mu       sync.Mutex
	lastCode string
}

func (m *memMailer) SendOTPEmail(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCode = code
	return nil
}

type memBlobs struct{ keys []string }

func (m *memBlobs) Upload(_ context.Context, body io.Reader, key, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return key, nil
}

type memStats struct{ lastDays int }

func (m *memStats) Upsert(_ context.Context, userID string, date time.Time, steps int, caloriesBurned float64) (models.DailyStats, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.DailyStats{}, store.ErrNotFound
	}
	return models.DailyStats{User: oid, Date: date, Steps: steps, CaloriesBurned: caloriesBurned}, nil
}

func (m *memStats) RangeByUser(_ context.Context, userID string, days int) ([]models.DailyStats, error) {
	m.lastDays = days
	return []models.DailyStats{}, nil
}

func (m *memStats) All(_ context.Context) ([]models.DailyStats, error) {
	return []models.DailyStats{}, nil
}

type memPlans struct {
	saved *models.WorkoutPlan
}

func (m *memPlans) Save(_ context.Context, plan models.WorkoutPlan) (models.WorkoutPlan, error) {
	plan.ID = primitive.NewObjectID()
	m.saved = &plan
	return plan, nil
}

func (m *memPlans) FindByUser(_ context.Context, userID string) (models.WorkoutPlan, error) {
	if m.saved != nil && m.saved.User.Hex() == userID {
		return *m.saved, nil
	}
	return models.WorkoutPlan{}, store.ErrNotFound
}

type memVitals struct{}

func (m *memVitals) Insert(_ context.Context, v models.Vitals) (models.Vitals, error) {
	v.ID = primitive.NewObjectID()
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	return v, nil
}

type memPreds struct{}

func (m *memPreds) SaveBloodPressure(_ context.Context, p models.BloodPressurePrediction) (models.BloodPressurePrediction, error) {
	p.ID = primitive.NewObjectID()
	return p, nil
}

func (m *memPreds) SaveDiabetes(_ context.Context, p models.DiabetesPrediction) (models.DiabetesPrediction, error) {
	p.ID = primitive.NewObjectID()
	return p, nil
}

type testServer struct {
	ts     *httptest.Server
	mailer *memMailer
	blobs  *memBlobs
	stats  *memStats
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mailer := &memMailer{}
	blobs := &memBlobs{}
	stats := &memStats{}
	svc := auth.NewService(
		newMemUsers(),
		auth.NewHasher(bcrypt.MinCost),
		auth.NewTokenManager("test-secret", 7*24*time.Hour),
		auth.NewOTPCache(300*time.Second),
		mailer,
		blobs,
	)
	mux := NewRouter(svc, stats, &memPlans{}, &memVitals{}, &memPreds{})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return &testServer{ts: ts, mailer: mailer, blobs: blobs, stats: stats}
}

func (s *testServer) postJSON(t *testing.T, path string, payload interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()
	return s.doJSON(t, http.MethodPost, path, payload, token)
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func signup(t *testing.T, s *testServer, email, password string) map[string]interface{} {
	t.Helper()
	resp, body := s.postJSON(t, "/api/signup", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	return user
}

func login(t *testing.T, s *testServer, email, password string) (string, map[string]interface{}) {
	t.Helper()
	resp, body := s.postJSON(t, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	return token, user
}

func TestSignupLoginProfileScenario(t *testing.T) {
	s := newTestServer(t)

	user := signup(t, s, "a@x.com", "secret123")
	assert.Equal(t, "a@x.com", user["email"])
	_, leaked := user["password"]
	assert.False(t, leaked, "password field must not be serialized")

	token, _ := login(t, s, "a@x.com", "secret123")

	resp, body := s.doJSON(t, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@x.com", profile["email"])
	_, leaked = profile["password"]
	assert.False(t, leaked)
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	s := newTestServer(t)

	signup(t, s, "a@x.com", "secret123")

	resp, body := s.postJSON(t, "/api/signup", map[string]string{
		"email":    "a@x.com",
		"password": "other-secret",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EmailTaken", body["error"])
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.postJSON(t, "/api/signup", map[string]string{"email": "not-an-email", "password": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation", body["error"])

	resp, _ = s.postJSON(t, "/api/signup", map[string]string{"email": "a@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "a@x.com", "secret123")

	resp, body := s.postJSON(t, "/api/login", map[string]string{"email": "a@x.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "InvalidCredentials", body["error"])

	// Unknown email produces the exact same error body.
	resp, body2 := s.postJSON(t, "/api/login", map[string]string{"email": "ghost@x.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, body, body2)
}

func TestPasswordResetScenario(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "a@x.com", "secret123")

	resp, _ := s.postJSON(t, "/api/forgot-password", map[string]string{"email": "a@x.com"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code := s.mailer.lastCode
	require.Len(t, code, 6)

	resp, body := s.postJSON(t, "/api/verify-otp", map[string]string{"email": "a@x.com", "otp": "000000"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OtpInvalid", body["error"])

	resp, _ = s.postJSON(t, "/api/verify-otp", map[string]string{"email": "a@x.com", "otp": code}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.postJSON(t, "/api/reset-password", map[string]string{"email": "a@x.com", "newPassword": "newpass1"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.postJSON(t, "/api/login", map[string]string{"email": "a@x.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	login(t, s, "a@x.com", "newpass1")

	// The OTP was consumed; another reset requires a fresh request.
	resp, body = s.postJSON(t, "/api/reset-password", map[string]string{"email": "a@x.com", "newPassword": "again1"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OtpRequired", body["error"])
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.postJSON(t, "/api/forgot-password", map[string]string{"email": "ghost@x.com"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UserNotFound", body["error"])
}

func TestProfileRequiresToken(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.doJSON(t, http.MethodGet, "/api/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.doJSON(t, http.MethodGet, "/api/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "InvalidToken", body["error"])
}

func TestUpdateProfileMergesFields(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "a@x.com", "secret123")
	token, _ := login(t, s, "a@x.com", "secret123")

	resp, body := s.doJSON(t, http.MethodPut, "/api/profile", map[string]interface{}{
		"fullName": "Ada Lovelace",
		"height":   172.5,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", user["fullName"])
	assert.Equal(t, 172.5, user["height"])
	assert.Equal(t, "a@x.com", user["email"])
}

func TestUploadProfileImage(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "a@x.com", "secret123")
	token, _ := login(t, s, "a@x.com", "secret123")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profileImage", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, s.ts.URL+"/api/profile/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	image, _ := user["profileImage"].(string)
	assert.Contains(t, image, "avatar.png")
	assert.NotContains(t, image, "http")
	require.Len(t, s.blobs.keys, 1)
}

func TestStatsEndpoints(t *testing.T) {
	s := newTestServer(t)
	userID := primitive.NewObjectID().Hex()

	resp, body := s.postJSON(t, "/api/stats", map[string]interface{}{
		"userId":         userID,
		"date":           "2025-06-01",
		"steps":          4200,
		"caloriesBurned": 180.5,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4200), body["steps"])

	resp, body = s.postJSON(t, "/api/stats", map[string]interface{}{"steps": 1}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation", body["error"])

	resp, _ = s.doJSON(t, http.MethodGet, "/api/stats/user/"+userID+"?days=3", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, s.stats.lastDays)

	resp, _ = s.doJSON(t, http.MethodGet, "/api/stats", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPlanEndpoints(t *testing.T) {
	s := newTestServer(t)
	userID := primitive.NewObjectID().Hex()

	resp, body := s.postJSON(t, "/api/plan/save", map[string]interface{}{
		"userId": userID,
		"weekly_plan": map[string]interface{}{
			"monday": []map[string]interface{}{
				{"exercise": "Squat", "sets": 3, "reps": 10, "weight": 60},
			},
		},
		"equipment":      []string{"barbell"},
		"recommendation": "rest on sunday",
		"diet":           "high protein",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, userID, body["user"])

	resp, _ = s.doJSON(t, http.MethodGet, "/api/plan/user/"+userID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.doJSON(t, http.MethodGet, "/api/plan/user/"+primitive.NewObjectID().Hex(), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NotFound", body["error"])

	resp, _ = s.postJSON(t, "/api/plan/save", map[string]interface{}{
		"userId":      "not-hex",
		"weekly_plan": map[string]interface{}{"monday": []map[string]interface{}{}},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVitalsEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.postJSON(t, "/api/vitals", map[string]interface{}{
		"temperature": 36.7,
		"bpm":         72,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 36.7, data["temperature"])
}

func TestPredictionEndpoints(t *testing.T) {
	s := newTestServer(t)
	userID := primitive.NewObjectID().Hex()

	resp, body := s.postJSON(t, "/api/predictions/blood-pressure", map[string]interface{}{
		"userId": userID,
		"input":  map[string]interface{}{"age": 44, "systolic_pressure": 135, "diastolic_pressure": 88},
		"result": "elevated",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "elevated", body["result"])

	resp, body = s.postJSON(t, "/api/predictions/diabetes", map[string]interface{}{
		"userId": userID,
		"input":  map[string]interface{}{"glucose": 148, "bmi": 33.6, "age": 50},
		"result": "positive",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "positive", body["result"])

	resp, body = s.postJSON(t, "/api/predictions/diabetes", map[string]interface{}{"userId": userID}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation", body["error"])
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "a@x.com", "secret123")
	token, _ := login(t, s, "a@x.com", "secret123")

	resp, body := s.postJSON(t, "/api/logout", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logout successful", body["message"])
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)
	user := signup(t, s, "a@x.com", "secret123")
	token, _ := login(t, s, "a@x.com", "secret123")
	id, _ := user["id"].(string)
	require.NotEmpty(t, id)

	resp, _ := s.doJSON(t, http.MethodDelete, "/api/user/"+id, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.postJSON(t, "/api/login", map[string]string{"email": "a@x.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "InvalidCredentials", body["error"])
}
