package api

import "net/http"

type userInfoResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

// UserInfo echoes the authenticated user's profile fields.
func UserInfo(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusInternalServerError, "Kullanıcı bilgileri alınırken bir hata oluştu")
		return
	}

	writeJSON(w, http.StatusOK, userInfoResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Username:  user.Username,
	})
}
