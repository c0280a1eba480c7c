package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/middlewares"
	"github.com/Vikramop/task-mangement-app/models"
	"github.com/Vikramop/task-mangement-app/services"
	"github.com/Vikramop/task-mangement-app/store"
)

type memUserStore struct {
	users map[primitive.ObjectID]models.User
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUserStore) Update(_ context.Context, user *models.User) error {
	m.users[user.ID] = *user
	return nil
}

type memTaskStore struct {
	tasks map[primitive.ObjectID]models.Task
}

func (m *memTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (m *memTaskStore) FindOwnedOrAssigned(_ context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.tasks {
		if t.CreatedBy == userID || (t.AssignedTo != nil && *t.AssignedTo == userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTaskStore) Create(_ context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	m.tasks[task.ID] = *task
	return nil
}

func (m *memTaskStore) Update(_ context.Context, task *models.Task) error {
	m.tasks[task.ID] = *task
	return nil
}

func (m *memTaskStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memTaskStore) ReassignOwned(_ context.Context, ownerID, assigneeID primitive.ObjectID) (int64, error) {
	var count int64
	for id, t := range m.tasks {
		if t.CreatedBy == ownerID {
			assignee := assigneeID
			t.AssignedTo = &assignee
			m.tasks[id] = t
			count++
		}
	}
	return count, nil
}

// setupServer wires the real services and routes against in-memory stores,
// mirroring the route table in main.go.
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := &memUserStore{users: make(map[primitive.ObjectID]models.User)}
	tasks := &memTaskStore{tasks: make(map[primitive.ObjectID]models.Task)}

	authService := services.NewAuthService(users, "test-secret")
	taskService := services.NewTaskService(tasks, users, "https://tasks.example.com", nil)

	authHandler := NewAuthHandler(authService)
	taskHandler := NewTaskHandler(taskService)

	requireAuth := func(h http.HandlerFunc) http.HandlerFunc {
		return middlewares.RequireAuth(authService, h)
	}

	r := mux.NewRouter()
	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/user", requireAuth(authHandler.GetUser)).Methods("GET")

	task := r.PathPrefix("/api/task").Subrouter()
	task.HandleFunc("/share/{taskId}", taskHandler.Share).Methods("POST")
	task.HandleFunc("", requireAuth(taskHandler.Create)).Methods("POST")
	task.HandleFunc("", requireAuth(taskHandler.List)).Methods("GET")
	task.HandleFunc("/{taskId}", taskHandler.GetByID).Methods("GET")
	task.HandleFunc("/{taskId}", requireAuth(taskHandler.Delete)).Methods("DELETE")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token, body string) (int, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return resp.StatusCode, decoded
}

func signupAndLogin(t *testing.T, base, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name":"A","email":%q,"password":"secret12","confirmPassword":"secret12"}`, email)
	status, resp := doJSON(t, http.MethodPost, base+"/api/auth/signup", "", body)
	if status != http.StatusCreated {
		t.Fatalf("signup status = %d: %v", status, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("signup returned no token")
	}
	return token
}

func TestCreateTask_OverdueScenario(t *testing.T) {
	srv := setupServer(t)
	token := signupAndLogin(t, srv.URL, "a@x.com")

	yesterday := time.Now().AddDate(0, 0, -1).Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"T1","checklist":[{"text":"x"}],"dueDate":%q}`, yesterday)

	status, resp := doJSON(t, http.MethodPost, srv.URL+"/api/task", token, body)
	if status != http.StatusCreated {
		t.Fatalf("status = %d: %v", status, resp)
	}

	task, _ := resp["task"].(map[string]interface{})
	if task == nil {
		t.Fatalf("no task in response: %v", resp)
	}
	if task["priority"] != models.PriorityHigh {
		t.Errorf("priority = %v, want %q", task["priority"], models.PriorityHigh)
	}
}

func TestCreateTask_RequiresAuth(t *testing.T) {
	srv := setupServer(t)

	status, resp := doJSON(t, http.MethodPost, srv.URL+"/api/task", "", `{"title":"T1"}`)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401: %v", status, resp)
	}
}

func TestDeleteTask_NotFoundEnvelope(t *testing.T) {
	srv := setupServer(t)
	token := signupAndLogin(t, srv.URL, "a@x.com")

	missing := primitive.NewObjectID().Hex()
	status, resp := doJSON(t, http.MethodDelete, srv.URL+"/api/task/"+missing, token, "")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
	if success, _ := resp["success"].(bool); success {
		t.Error("success = true in a not-found response")
	}
}

func TestShareAndFetchTask_Public(t *testing.T) {
	srv := setupServer(t)
	token := signupAndLogin(t, srv.URL, "a@x.com")

	due := time.Now().AddDate(0, 0, 3).Format(time.RFC3339)
	body := fmt.Sprintf(`{"title":"T1","checklist":[{"text":"x"}],"dueDate":%q}`, due)
	status, resp := doJSON(t, http.MethodPost, srv.URL+"/api/task", token, body)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d: %v", status, resp)
	}
	task := resp["task"].(map[string]interface{})
	id := task["id"].(string)

	// Sharing needs no token.
	status, resp = doJSON(t, http.MethodPost, srv.URL+"/api/task/share/"+id, "", "")
	if status != http.StatusOK {
		t.Fatalf("share status = %d: %v", status, resp)
	}
	if link, _ := resp["link"].(string); link != "https://tasks.example.com/task/"+id {
		t.Errorf("link = %q", link)
	}

	// Neither does reading, and the creator is joined in.
	status, resp = doJSON(t, http.MethodGet, srv.URL+"/api/task/"+id, "", "")
	if status != http.StatusOK {
		t.Fatalf("get status = %d: %v", status, resp)
	}
	fetched, _ := resp["task"].(map[string]interface{})
	creator, _ := fetched["creator"].(map[string]interface{})
	if creator == nil || creator["email"] != "a@x.com" {
		t.Errorf("creator = %v, want a@x.com", creator)
	}
}
