package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/testutil"
)

type testServer struct {
	t       *testing.T
	db      *gorm.DB
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	return &testServer{t: t, db: db, handler: NewServer(testutil.Config(), db, nil).Handler()}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/token/", "", map[string]string{"email": email, "password": testutil.Password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode(s.t, w)["access"].(string)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnonymousCanReadButNotWrite(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/students/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["results"])

	w = s.do(http.MethodPost, "/students/", "", map[string]any{"name": "An"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/teachers/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/teachers/", "", map[string]any{"name": "Lan", "role": "Homeroom"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvalidBearerIsRejected(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/students/", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTeacherWritesStudentsButNotTeachers(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "teacher@example.com", testutil.Roles{Teacher: true})
	token := s.login("teacher@example.com")

	w := s.do(http.MethodPost, "/students/", token, map[string]any{"name": "An", "base_fee": 1000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decode(t, w)["student_id"])

	w = s.do(http.MethodPost, "/teachers/", token, map[string]any{"name": "Lan", "role": "Homeroom"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStudentLifecycle(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "admin@example.com", testutil.Roles{Admin: true})
	token := s.login("admin@example.com")

	w := s.do(http.MethodPost, "/students/", token, map[string]any{
		"name":        "An",
		"birthdate":   "2018-03-09",
		"base_fee":    1500000,
		"paid_amount": 500000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	seq := created["sequential_number"].(string)

	w = s.do(http.MethodPatch, "/students/"+seq+"/", token, map[string]any{"paid_amount": 1500000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode(t, w)
	assert.Equal(t, float64(1500000), patched["paid_amount"])
	assert.Equal(t, "2018-03-09", patched["birthdate"])

	w = s.do(http.MethodGet, "/students/"+seq+"/fees/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1500000), decode(t, w)["base_fee"])

	w = s.do(http.MethodDelete, "/students/"+seq+"/", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/students/"+seq+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/students/not-a-uuid/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentUpdateIgnoresIdentityFields(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "teacher@example.com", testutil.Roles{Teacher: true})
	token := s.login("teacher@example.com")

	w := s.do(http.MethodPost, "/students/", token, map[string]any{"name": "An"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	seq := created["sequential_number"].(string)

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		for _, studentID := range []any{0, "abc", 99} {
			w = s.do(method, "/students/"+seq+"/", token, map[string]any{
				"name":              "Binh",
				"student_id":        studentID,
				"sequential_number": "zzz",
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			updated := decode(t, w)
			assert.Equal(t, "Binh", updated["name"])
			assert.Equal(t, created["student_id"], updated["student_id"])
			assert.Equal(t, seq, updated["sequential_number"])
		}
	}
}

func TestStudentValidation(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "teacher@example.com", testutil.Roles{Teacher: true})
	token := s.login("teacher@example.com")

	w := s.do(http.MethodPost, "/students/", token, map[string]any{"discount_percentage": 150, "birthdate": "09/03/2018"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]any)
	assert.Contains(t, fields, "discount_percentage")
	assert.Contains(t, fields, "birthdate")

	w = s.do(http.MethodPost, "/students/", token, map[string]any{"student_id": 5})
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(http.MethodPost, "/students/", token, map[string]any{"student_id": 5})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "student_id")
}

func TestBulkDeleteReportsMissingIDs(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "admin@example.com", testutil.Roles{Admin: true})
	token := s.login("admin@example.com")

	w := s.do(http.MethodPost, "/teachers/", token, map[string]any{"name": "Lan", "role": "Homeroom"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = s.do(http.MethodPost, "/teachers/bulk_delete/", token, map[string]any{"ids": []string{id, "missing"}})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []any{"missing"}, decode(t, w)["missing_ids"])

	w = s.do(http.MethodGet, "/teachers/"+id+"/salary/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/teachers/bulk_delete/", token, map[string]any{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/teachers/bulk_delete/", token, map[string]any{"ids": []string{id}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["deleted"])
}

func TestTeacherPutRequiresNameAndRole(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "root@example.com", testutil.Roles{Superuser: true})
	token := s.login("root@example.com")

	w := s.do(http.MethodPost, "/teachers/", token, map[string]any{"name": "Lan", "role": "Homeroom"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(string)

	w = s.do(http.MethodPut, "/teachers/"+id+"/", token, map[string]any{"base_salary": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/teachers/"+id+"/", token, map[string]any{"base_salary": 100})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lan", decode(t, w)["name"])
}

func TestTokenEndpoints(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "teacher@example.com", testutil.Roles{Teacher: true})

	w := s.do(http.MethodPost, "/token/", "", map[string]string{"email": "teacher@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/token/", "", map[string]string{"email": "teacher@example.com", "password": testutil.Password})
	require.Equal(t, http.StatusOK, w.Code)
	pair := decode(t, w)
	access := pair["access"].(string)
	refresh := pair["refresh"].(string)

	w = s.do(http.MethodPost, "/token/verify/", "", map[string]string{"token": access})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/token/verify/", "", map[string]string{"token": refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/token/introspect/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["active"])

	w = s.do(http.MethodGet, "/auth/permissions/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["is_teacher"])

	w = s.do(http.MethodGet, "/users/me/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/stats/", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total_users"])

	w = s.do(http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["access"])

	w = s.do(http.MethodPost, "/auth/logout/", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/token/refresh/", "", map[string]string{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionToTokenWithoutIdentity(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/auth/session-to-token/", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t,
		[]any{"session", "user_info_cookie", "access_token_cookie", "email_hint"},
		decode(t, w)["attempted"])
}

func TestSessionToTokenWithEmailHeader(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "teacher@example.com", testutil.Roles{Teacher: true})

	req := httptest.NewRequest(http.MethodGet, "/auth/session-to-token/", nil)
	req.Header.Set("X-User-Email", "teacher@example.com")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "email_hint", body["strategy"])
	assert.NotEmpty(t, body["access"])

	var names []string
	for _, cookie := range w.Result().Cookies() {
		names = append(names, cookie.Name)
	}
	assert.Contains(t, names, "accessToken")
	assert.Contains(t, names, "user_info")
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)
	payload := map[string]string{"email": "new@example.com", "password": "long-enough"}

	w := s.do(http.MethodPost, "/users/register/", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, decode(t, w)["is_teacher"])

	w = s.do(http.MethodPost, "/users/register/", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAttendanceIsAdminWriteOnly(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateUser(t, s.db, "admin@example.com", testutil.Roles{Admin: true})
	testutil.CreateUser(t, s.db, "teacher@example.com", testutil.Roles{Teacher: true})
	admin := s.login("admin@example.com")

	w := s.do(http.MethodPost, "/teachers/", admin, map[string]any{"name": "Lan", "role": "Homeroom"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	payload := map[string]any{"teacher_id": id, "year": 2024, "month": 6, "full_days": []int{3, 4}, "half_days": []int{8}}

	w = s.do(http.MethodPost, "/attendance/", s.login("teacher@example.com"), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/attendance/", admin, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/attendance/"+id+"/2024/6/", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, []any{float64(3), float64(4)}, body["full_days"])
	assert.Equal(t, float64(2), body["teaching_days"])
	assert.Equal(t, 0.5, body["extra_teaching_days"])

	w = s.do(http.MethodPost, "/attendance/", admin, map[string]any{"teacher_id": id, "year": 2024, "month": 2, "full_days": []int{30}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "full_days")

	w = s.do(http.MethodGet, "/attendance/"+id+"/2024/7/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/attendance/"+id+"/2024/june/", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
