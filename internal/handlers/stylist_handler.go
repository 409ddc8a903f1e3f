package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/middleware"
	ucStylist "github.com/BruksfildServices01/salon-pos/internal/usecase/stylist"
)

// StylistHandler serves the stylist sub-resources: breaks and avatar.
type StylistHandler struct {
	repo         ucStylist.Repository
	addBreak     *ucStylist.AddBreak
	removeBreak  *ucStylist.RemoveBreak
	uploadAvatar *ucStylist.UploadAvatar
	maxAvatar    int64
}

func NewStylistSubHandler(
	repo ucStylist.Repository,
	addBreak *ucStylist.AddBreak,
	removeBreak *ucStylist.RemoveBreak,
	uploadAvatar *ucStylist.UploadAvatar,
	maxAvatar int64,
) *StylistHandler {
	return &StylistHandler{
		repo:         repo,
		addBreak:     addBreak,
		removeBreak:  removeBreak,
		uploadAvatar: uploadAvatar,
		maxAvatar:    maxAvatar,
	}
}

type AddBreakRequest struct {
	Date   string `json:"date" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
	Reason string `json:"reason"`
}

func (h *StylistHandler) ListBreaks(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	st, err := h.repo.GetStylist(c.Request.Context(), middleware.SalonID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_breaks")
		return
	}
	c.JSON(http.StatusOK, st.Breaks)
}

func (h *StylistHandler) AddBreak(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddBreakRequest
	if !bindJSON(c, &req) {
		return
	}

	br, err := h.addBreak.Execute(c.Request.Context(), ucStylist.AddBreakInput{
		SalonID:   middleware.SalonID(c),
		UserID:    middleware.UserID(c),
		StylistID: id,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		Reason:    req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_add_break")
		return
	}
	c.JSON(http.StatusCreated, br)
}

func (h *StylistHandler) RemoveBreak(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httperr.BadRequest(c, "invalid_index", "Invalid break index.")
		return
	}

	if err := h.removeBreak.Execute(
		c.Request.Context(),
		middleware.SalonID(c),
		middleware.UserID(c),
		id,
		index,
	); err != nil {
		httperr.FromError(c, err, "failed_to_remove_break")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadAvatar reads the multipart field "file".
func (h *StylistHandler) UploadAvatar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	_, raw, ok := readUpload(c, h.maxAvatar)
	if !ok {
		return
	}

	key, err := h.uploadAvatar.Execute(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id, raw)
	if err != nil {
		httperr.FromError(c, err, "failed_to_upload_avatar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_key": key})
}

// readUpload returns the name and bytes of the multipart "file" field,
// answering 413 past limit and 400 when the field is missing.
func readUpload(c *gin.Context, limit int64) (string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.TooLarge(c, "file_too_large", "The uploaded file is too large.")
			return "", nil, false
		}
		httperr.BadRequest(c, "missing_file", "No file uploaded.")
		return "", nil, false
	}
	if fh.Size > limit {
		httperr.TooLarge(c, "file_too_large", "The uploaded file is too large.")
		return "", nil, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read the uploaded file.")
		return "", nil, false
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Could not read the uploaded file.")
		return "", nil, false
	}
	return fh.Filename, raw, true
}
