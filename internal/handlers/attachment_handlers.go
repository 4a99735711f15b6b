package handlers

import (
	"io"
	"mime"
	"net/http"
	"time"

	"projectFlow/internal/logger"

	"go.uber.org/zap"
)

const maxUploadSize = 32 << 20

func (h *Handler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	taskID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	attachments, err := h.svc.Attachments.ListAttachments(r.Context(), taskID)
	if err != nil {
		handleError(w, r, err, "list_attachments")
		return
	}

	logOut("Вложения получены", start, http.StatusOK, zap.Int("count", len(attachments)))
	responseWithJSON(w, http.StatusOK, toPayload("attachments", attachments))
}

// AttachFile принимает multipart/form-data с полем file
func (h *Handler) AttachFile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	taskID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if !checkContentType(r, "multipart/form-data") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "multipart/form-data"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть multipart/form-data")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, r, "file", "не удалось прочитать файл: "+err.Error())
		return
	}
	defer file.Close()

	attachment, err := h.svc.Attachments.AttachFile(r.Context(), taskID, header.Filename, file)
	if err != nil {
		handleError(w, r, err, "attach_file")
		return
	}

	logOut("Файл прикреплён", start, http.StatusCreated,
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("task_id", taskID.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("attachment", attachment))
}

func (h *Handler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	attachment, content, err := h.svc.Attachments.OpenAttachment(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "open_attachment")
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": attachment.Filename}))
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, content)
	if err != nil {
		logger.Error("HTTP: Ошибка передачи файла", err, zap.String("attachment_id", id.String()))
		return
	}

	logOut("Файл отдан", start, http.StatusOK,
		zap.String("attachment_id", id.String()),
		zap.Int64("bytes", n))
}

func (h *Handler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Attachments.DeleteAttachment(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_attachment")
		return
	}

	logOut("Вложение удалено", start, http.StatusNoContent, zap.String("attachment_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
