package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the verifier's route table. Admin routes are registered
// only when an auth backend is configured.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(Recover(h.log), RequestID(h.log))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/time", h.GetTimeHandler).Methods("GET")
	r.HandleFunc("/verify", h.VerifyHandler).Methods("POST")
	if h.auth != nil {
		r.HandleFunc("/admin/login", h.LoginHandler).Methods("POST")
		r.HandleFunc("/admin/verify", h.requireAdmin(h.AdminVerifyHandler)).Methods("POST")
	}
	return r
}
