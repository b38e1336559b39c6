package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	opusecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/operation"
)

// maxUploadBytes bounds a single photo upload.
const maxUploadBytes = 10 << 20

type OperationHandler struct {
	list   *opusecase.ListOperations
	attach *opusecase.AttachPhoto
}

func NewOperationHandler(list *opusecase.ListOperations, attach *opusecase.AttachPhoto) *OperationHandler {
	return &OperationHandler{list: list, attach: attach}
}

func optionalID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func optionalDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+" date.")
		return nil, false
	}
	return &t, true
}

func (h *OperationHandler) List(c *gin.Context) {
	f := operation.ListFilter{TenantID: tenantID(c)}

	var ok bool
	if f.PersonnelID, ok = optionalID(c, "personnel_id"); !ok {
		return
	}
	if f.AppointmentID, ok = optionalID(c, "appointment_id"); !ok {
		return
	}
	if f.From, ok = optionalDate(c, "from"); !ok {
		return
	}
	if f.To, ok = optionalDate(c, "to"); !ok {
		return
	}
	if f.To != nil {
		end := f.To.Add(24 * time.Hour)
		f.To = &end
	}

	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))
	if f.Offset < 0 {
		f.Offset = 0
	}

	res, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *OperationHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "A photo file is required.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "photo_unreadable", "Could not read the uploaded photo.")
		return
	}
	defer f.Close()

	op, err := h.attach.Execute(c.Request.Context(), opusecase.AttachPhotoInput{
		TenantID:    tenantID(c),
		ActorID:     userID(c),
		OperationID: id,
		Image:       f,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, op)
}
