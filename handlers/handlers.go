package handlers

import (
	"log"
	"net/http"

	"github.com/Vikramop/task-mangement-app/services"
	"github.com/Vikramop/task-mangement-app/utils"
)

// writeError converts service errors to their envelope; anything without a
// kind is logged and reported as a 500.
func writeError(w http.ResponseWriter, op string, err error) {
	if se, ok := services.AsError(err); ok {
		utils.Error(w, se.Status(), se.Message)
		return
	}
	log.Printf("%s error: %v", op, err)
	utils.Error(w, http.StatusInternalServerError, "something went wrong")
}
