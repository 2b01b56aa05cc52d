package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/chrissnell/moonorbit/internal/session"
	"github.com/chrissnell/moonorbit/pkg/lunar"
	"github.com/chrissnell/moonorbit/pkg/orbit"
	"github.com/chrissnell/moonorbit/pkg/responseformat"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 4096

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteResponse(w, req, status, data, nil); err != nil {
		h.controller.logger.Errorf("error encoding %s response: %v", req.URL.Path, err)
	}
}

func (h *Handlers) fail(w http.ResponseWriter, req *http.Request, status int, err error) {
	if err := h.formatter.WriteError(w, req, status, err); err != nil {
		h.controller.logger.Errorf("error encoding %s error response: %v", req.URL.Path, err)
	}
}

// GetConstants handles GET /api/constants
func (h *Handlers) GetConstants(w http.ResponseWriter, req *http.Request) {
	e := h.controller.engine
	h.write(w, req, http.StatusOK, ConstantsResponse{
		Orbit:        e.Constants(),
		Convention:   e.Convention().String(),
		Style:        e.Style().String(),
		Disk:         e.Disk(),
		SpeedPresets: orbit.Presets,
	})
}

// GetFrame handles GET /api/frame?day=D[&style=path|mask]
func (h *Handlers) GetFrame(w http.ResponseWriter, req *http.Request) {
	day, err := floatParam(req, "day", 0)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}
	style, err := h.styleParam(req)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}

	h.write(w, req, http.StatusOK, NewFrameResponse(h.controller.engine.FrameWithStyle(day, style)))
}

// GetPhases handles GET /api/phases
func (h *Handlers) GetPhases(w http.ResponseWriter, req *http.Request) {
	phases := lunar.Phases()
	resp := make([]PhaseResponse, 0, len(phases))
	for _, p := range phases {
		resp = append(resp, newPhaseResponse(p))
	}
	h.write(w, req, http.StatusOK, resp)
}

// GetSilhouette handles GET /api/silhouette?angle=A[&style=path|mask]. The
// angle is read in the server's configured convention.
func (h *Handlers) GetSilhouette(w http.ResponseWriter, req *http.Request) {
	if req.URL.Query().Get("angle") == "" {
		h.fail(w, req, http.StatusBadRequest, errors.New("missing angle parameter"))
		return
	}
	angle, err := floatParam(req, "angle", 0)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}
	style, err := h.styleParam(req)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}

	angle = lunar.NormalizeAngle(angle)
	h.write(w, req, http.StatusOK, newSilhouetteResponse(angle, h.controller.engine.Silhouette(angle, style)))
}

// GetMoonSVG handles GET /moon.svg?day=D[&style=path|mask][&size=px]
func (h *Handlers) GetMoonSVG(w http.ResponseWriter, req *http.Request) {
	day, err := floatParam(req, "day", 0)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}
	style, err := h.styleParam(req)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}
	size, err := floatParam(req, "size", 200)
	if err != nil || size < 1 || size > 4096 {
		h.fail(w, req, http.StatusBadRequest, errors.New("size must be between 1 and 4096"))
		return
	}

	frame := h.controller.engine.FrameWithStyle(day, style)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := writeMoonSVG(w, h.controller.engine.Disk(), frame.Silhouette, int(size)); err != nil {
		h.controller.logger.Errorf("error writing moon svg: %v", err)
	}
}

// CreateSession handles POST /api/sessions
func (h *Handlers) CreateSession(w http.ResponseWriter, req *http.Request) {
	style, err := h.styleParam(req)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}

	s, err := h.controller.registry.Create()
	if errors.Is(err, session.ErrTooManySessions) {
		h.controller.logger.Warnf("refusing new session: %v", err)
		h.fail(w, req, http.StatusServiceUnavailable, err)
		return
	}
	if err != nil {
		h.fail(w, req, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+s.ID.String())
	h.write(w, req, http.StatusCreated, h.sessionResponse(s, style))
}

// GetSession handles GET /api/sessions/{id}
func (h *Handlers) GetSession(w http.ResponseWriter, req *http.Request) {
	h.withSession(w, req, func(*session.Session) error { return nil })
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *Handlers) DeleteSession(w http.ResponseWriter, req *http.Request) {
	if err := h.controller.registry.Delete(mux.Vars(req)["id"]); err != nil {
		h.fail(w, req, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSessionDay handles PUT /api/sessions/{id}/day. Setting the day pauses
// playback.
func (h *Handlers) SetSessionDay(w http.ResponseWriter, req *http.Request) {
	h.withSession(w, req, func(s *session.Session) error {
		var body DayRequest
		if err := decodeBody(w, req, &body); err != nil {
			return err
		}
		if body.Day == nil {
			return errors.New("missing day")
		}
		return s.Driver.SetDay(*body.Day)
	})
}

// SetSessionSpeed handles PUT /api/sessions/{id}/speed
func (h *Handlers) SetSessionSpeed(w http.ResponseWriter, req *http.Request) {
	h.withSession(w, req, func(s *session.Session) error {
		var body SpeedRequest
		if err := decodeBody(w, req, &body); err != nil {
			return err
		}

		var raw string
		switch v := body.Speed.(type) {
		case string:
			raw = v
		case float64:
			raw = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			return errors.New("speed must be a preset name or a number")
		}

		speed, err := orbit.ParseSpeed(raw)
		if err != nil {
			return err
		}
		return s.Driver.SetSpeed(speed)
	})
}

// SessionAction handles POST /api/sessions/{id}/{action}. The scrub and
// release actions bracket a slider drag; ticks are held in between.
func (h *Handlers) SessionAction(w http.ResponseWriter, req *http.Request) {
	h.withSession(w, req, func(s *session.Session) error {
		switch action := mux.Vars(req)["action"]; action {
		case "play":
			s.Driver.Play()
		case "pause":
			s.Driver.Pause()
		case "toggle":
			s.Driver.Toggle()
		case "reset":
			s.Driver.Reset()
		case "scrub":
			s.Driver.BeginScrub()
		case "release":
			s.Driver.EndScrub()
		default:
			return fmt.Errorf("unknown action %q", action)
		}
		return nil
	})
}

// withSession resolves the session and the requested silhouette style, runs
// apply and writes the resulting session state. Errors from apply are 400s.
func (h *Handlers) withSession(w http.ResponseWriter, req *http.Request, apply func(*session.Session) error) {
	s, err := h.controller.registry.Get(mux.Vars(req)["id"])
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.fail(w, req, status, err)
		return
	}

	style, err := h.styleParam(req)
	if err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}
	if err := apply(s); err != nil {
		h.fail(w, req, http.StatusBadRequest, err)
		return
	}
	h.write(w, req, http.StatusOK, h.sessionResponse(s, style))
}

func (h *Handlers) sessionResponse(s *session.Session, style lunar.Style) SessionResponse {
	state := s.Driver.State()
	return SessionResponse{
		ID:      s.ID.String(),
		Created: s.Created,
		State:   state,
		Frame:   NewFrameResponse(h.controller.engine.FrameWithStyle(state.Day, style)),
	}
}

func (h *Handlers) styleParam(req *http.Request) (lunar.Style, error) {
	raw := req.URL.Query().Get("style")
	if raw == "" {
		return h.controller.engine.Style(), nil
	}
	return lunar.ParseStyle(raw)
}

// floatParam parses a finite float query parameter, returning def when absent
func floatParam(req *http.Request, name string, def float64) (float64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
