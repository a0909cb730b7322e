package handlers

import (
	"net/http"

	"formforge-backend/pkg/common"
	pkgerrors "formforge-backend/pkg/errors"
)

// respondAppError maps an application error onto the API error envelope
func respondAppError(w http.ResponseWriter, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		common.RespondErrorWithDetails(w, pkgerrors.HTTPStatusFor(err),
			string(appErr.Type), appErr.Message, appErr.Details)
		return
	}
	common.RespondError(w, http.StatusInternalServerError,
		string(pkgerrors.ErrorTypeInternal), "internal error")
}
