package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/middlewares"
	"github.com/Vikramop/task-mangement-app/services"
	"github.com/Vikramop/task-mangement-app/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func taskIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
}

// Create godoc
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /task [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, in)
	if err != nil {
		writeError(w, "CreateTask", err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "task created successfully",
		"task":    task,
	})
}

// List godoc
// @Summary      List tasks the user owns or is assigned to
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Router       /task [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), userID)
	if err != nil {
		writeError(w, "ListTasks", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tasks":   tasks,
	})
}

// Sort godoc
// @Summary      Tasks bucketed by due-date window
// @Tags         tasks
// @Produce      json
// @Param        filter  query  string  false  "Today, This Week or This Month"
// @Security     BearerAuth
// @Router       /task/sort [get]
func (h *TaskHandler) Sort(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sorted, err := h.tasks.SortTasks(r.Context(), userID)
	if err != nil {
		writeError(w, "SortTasks", err)
		return
	}

	if filter := r.URL.Query().Get("filter"); filter != "" {
		bucket, ok := sorted.Bucket(filter)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "filter must be Today, This Week or This Month")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"filter":  filter,
			"tasks":   bucket,
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tasks":   sorted,
	})
}

// Analytics godoc
// @Summary      Aggregate task counts for the user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Router       /task/analytics [get]
func (h *TaskHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	analytics, err := h.tasks.GetTaskAnalytics(r.Context(), userID)
	if err != nil {
		writeError(w, "GetTaskAnalytics", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"analytics": analytics,
	})
}

type addAssigneeRequest struct {
	Email string `json:"email"`
}

// AddAssignee godoc
// @Summary      Reassign every owned task to another user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /task/add [post]
func (h *TaskHandler) AddAssignee(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req addAssigneeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.tasks.AddAssignee(r.Context(), userID, req.Email)
	if err != nil {
		writeError(w, "AddAssignee", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "tasks assigned successfully",
		"reassigned": count,
	})
}

// Share godoc
// @Summary      Get a shareable link for a task
// @Tags         tasks
// @Produce      json
// @Router       /task/share/{taskId} [post]
func (h *TaskHandler) Share(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	link, err := h.tasks.ShareTask(r.Context(), taskID)
	if err != nil {
		writeError(w, "ShareTask", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "task shared successfully",
		"link":    link,
	})
}

// GetByID godoc
// @Summary      Fetch a single task with its creator
// @Tags         tasks
// @Produce      json
// @Router       /task/{taskId} [get]
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.tasks.GetTaskByID(r.Context(), taskID)
	if err != nil {
		writeError(w, "GetTaskByID", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"task":    task,
	})
}

// Edit godoc
// @Summary      Patch a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /task/{taskId} [put]
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var in services.EditTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.EditTask(r.Context(), userID, taskID, in)
	if err != nil {
		writeError(w, "EditTask", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "task updated successfully",
		"task":    task,
	})
}

// Delete godoc
// @Summary      Delete an owned task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Router       /task/{taskId} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r)
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.tasks.DeleteTask(r.Context(), userID, taskID)
	if err != nil {
		writeError(w, "DeleteTask", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "task deleted successfully",
		"task":    task,
	})
}
