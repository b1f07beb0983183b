package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/dialoguegraph/internal/config"
	"github.com/gyaneshwarpardhi/dialoguegraph/internal/editor"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	ed     *editor.Editor
	loader *config.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes. Reloads re-read the
// document through loader; the editor is expected to Follow it.
func New(ed *editor.Editor, loader *config.Loader) http.Handler {
	h := &Handler{ed: ed, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /v1/dialogue", h.getDialogue)
	h.mux.HandleFunc("GET /v1/dialogue/children", h.listChildren)
	h.mux.HandleFunc("POST /v1/dialogue/nodes", h.createNode)
	h.mux.HandleFunc("DELETE /v1/dialogue/nodes/{id}", h.deleteNode)
	h.mux.HandleFunc("PUT /v1/dialogue/nodes/{id}/speaker", h.setSpeaker)
	h.mux.HandleFunc("PUT /v1/dialogue/nodes/{id}/text", h.setText)
	h.mux.HandleFunc("POST /v1/dialogue/nodes/{id}/children", h.addChild)
	h.mux.HandleFunc("DELETE /v1/dialogue/nodes/{id}/children/{child}", h.removeChild)
	h.mux.HandleFunc("POST /v1/dialogue/reload", h.reload)
	h.mux.HandleFunc("GET /v1/quests/{id}/tooltip", h.questTooltip)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// GET /v1/dialogue: full snapshot.
func (h *Handler) getDialogue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ed.Snapshot())
}

// GET /v1/dialogue/children?node=ID: children of a node, roots when node is empty.
func (h *Handler) listChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.ed.Children(r.URL.Query().Get("node"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"children": children})
}

type createRequest struct {
	Parent string `json:"parent"`
}

// POST /v1/dialogue/nodes: create a node, optionally under a parent.
func (h *Handler) createNode(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	n, err := h.ed.CreateNode(req.Parent)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// DELETE /v1/dialogue/nodes/{id}
func (h *Handler) deleteNode(w http.ResponseWriter, r *http.Request) {
	if err := h.ed.DeleteNode(r.PathValue("id")); err != nil {
		writeEditorError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type speakerRequest struct {
	Player *bool `json:"player"`
}

// PUT /v1/dialogue/nodes/{id}/speaker
func (h *Handler) setSpeaker(w http.ResponseWriter, r *http.Request) {
	var req speakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.Player == nil {
		writeError(w, http.StatusBadRequest, "player is required")
		return
	}
	n, err := h.ed.SetSpeaker(r.PathValue("id"), *req.Player)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

type textRequest struct {
	Text string `json:"text"`
}

// PUT /v1/dialogue/nodes/{id}/text
func (h *Handler) setText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	n, err := h.ed.SetText(r.PathValue("id"), req.Text)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

type childRequest struct {
	Child string `json:"child"`
}

// POST /v1/dialogue/nodes/{id}/children: link an existing node as a child.
// The response shows the parent after validation, without the edge if it
// broke speaker alternation.
func (h *Handler) addChild(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.Child == "" {
		writeError(w, http.StatusBadRequest, "child is required")
		return
	}
	n, err := h.ed.AddChild(r.PathValue("id"), req.Child)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// DELETE /v1/dialogue/nodes/{id}/children/{child}
func (h *Handler) removeChild(w http.ResponseWriter, r *http.Request) {
	n, err := h.ed.RemoveChild(r.PathValue("id"), r.PathValue("child"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// POST /v1/dialogue/reload: re-read the document from disk.
func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	doc, err := h.loader.Reload()
	if errors.Is(err, config.ErrInvalid) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":    true,
		"dialogue":    doc.Dialogue.ID,
		"nodes_count": len(doc.Dialogue.Nodes),
	})
}

// GET /v1/quests/{id}/tooltip
func (h *Handler) questTooltip(w http.ResponseWriter, r *http.Request) {
	tip, err := h.ed.Tooltip(r.PathValue("id"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tip)
}

// GET /healthz: always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeEditorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editor.ErrNodeNotFound), errors.Is(err, editor.ErrQuestNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
