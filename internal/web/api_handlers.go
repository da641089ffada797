package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jsteiner/grundwerk/internal/assessment"
	"github.com/jsteiner/grundwerk/internal/notary"
	"github.com/jsteiner/grundwerk/internal/phase"
	"github.com/jsteiner/grundwerk/internal/property"
	"github.com/jsteiner/grundwerk/internal/renovation"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// engineError maps engine error kinds to HTTP status codes. Every engine
// failure is recoverable; the status tells the caller how to present it.
func engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assessment.ErrInsufficientData),
		errors.Is(err, notary.ErrInvalidDateProposal),
		errors.Is(err, notary.ErrInvalidSelection):
		apiError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, phase.ErrInvalidPhase):
		apiError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, notary.ErrInvalidTransition),
		errors.Is(err, phase.ErrNotForward),
		errors.Is(err, notary.ErrConflict):
		apiError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, notary.ErrPartnerManaged):
		apiError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, notary.ErrNotFound):
		apiError(w, err.Error(), http.StatusNotFound)
	default:
		apiError(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleProperties routes /api/properties — list or add.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.apiListProperties(w, r)
	case http.MethodPost:
		s.apiAddProperty(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePropertyRoute routes /api/properties/{id}/* requests.
func (s *Server) handlePropertyRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/properties/")

	idStr, rest, _ := strings.Cut(path, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}

	switch {
	case rest == "":
		switch r.Method {
		case http.MethodGet:
			s.apiGetProperty(w, id)
		case http.MethodDelete:
			s.apiDeleteProperty(w, id)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case rest == "assessment" && r.Method == http.MethodGet:
		s.apiAssessment(w, r, id)
	case rest == "financials" && r.Method == http.MethodPut:
		s.apiUpdateFinancials(w, r, id)
	case rest == "phase" && r.Method == http.MethodGet:
		s.apiPhaseState(w, id)
	case rest == "phase/advance" && r.Method == http.MethodPost:
		s.apiAdvancePhase(w, r, id)
	case rest == "phase/history" && r.Method == http.MethodGet:
		s.apiPhaseHistory(w, id)
	case strings.HasPrefix(rest, "notary"):
		s.apiNotaryRoute(w, r, id, strings.TrimPrefix(rest, "notary"))
	default:
		apiError(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) apiListProperties(w http.ResponseWriter, r *http.Request) {
	opts := property.ListOptions{}
	if v := r.URL.Query().Get("phase"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			apiError(w, "invalid phase filter", http.StatusBadRequest)
			return
		}
		opts.Phase = &p
	}
	if v := r.URL.Query().Get("channel"); v != "" {
		if !property.ValidSalesChannel(v) {
			apiError(w, "invalid channel filter", http.StatusBadRequest)
			return
		}
		opts.SalesChannel = property.SalesChannel(v)
	}

	props, err := s.props.List(opts)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if props == nil {
		props = []*property.Property{}
	}
	apiJSON(w, props, http.StatusOK)
}

func (s *Server) apiAddProperty(w http.ResponseWriter, r *http.Request) {
	var p property.Property
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if p.Address == "" {
		apiError(w, "address is required", http.StatusBadRequest)
		return
	}

	saved, err := s.props.Insert(&p)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, saved, http.StatusCreated)
}

func (s *Server) apiGetProperty(w http.ResponseWriter, id int64) {
	p, err := s.props.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

func (s *Server) apiDeleteProperty(w http.ResponseWriter, id int64) {
	if err := s.props.Delete(id); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiJSON(w, map[string]int64{"deleted": id}, http.StatusOK)
}

func (s *Server) apiUpdateFinancials(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		PurchasePrice    float64   `json:"purchase_price"`
		RenovationBudget float64   `json:"renovation_budget"`
		MonthlyRent      *float64  `json:"monthly_rent"`
		RoomRents        []float64 `json:"room_rents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.props.UpdateFinancials(id, req.PurchasePrice, req.RenovationBudget, req.MonthlyRent, req.RoomRents); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	p, err := s.props.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, p, http.StatusOK)
}

// assessmentResponse bundles the four category scores with the overall
// verdict.
type assessmentResponse struct {
	Scores  []assessment.CategoryScore   `json:"scores"`
	Overall assessment.OverallAssessment `json:"overall"`
}

func (s *Server) apiAssessment(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := s.props.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	inputs := assessment.Inputs{HOAPreview: r.URL.Query().Get("hoa") == "preview"}
	scores, err := assessment.ComputeCategoryScores(p.Snapshot(), inputs)
	if err != nil {
		engineError(w, err)
		return
	}

	apiJSON(w, assessmentResponse{
		Scores:  scores,
		Overall: assessment.AggregateAssessment(scores),
	}, http.StatusOK)
}

// phaseResponse is the lifecycle view for one property.
type phaseResponse struct {
	State       phase.State `json:"state"`
	Progress    float64     `json:"progress"`
	DaysInPhase int         `json:"days_in_phase"`
}

func (s *Server) apiPhaseState(w http.ResponseWriter, id int64) {
	p, err := s.props.GetByID(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	state, err := phase.DeriveState(p.CurrentPhase)
	if err != nil {
		engineError(w, err)
		return
	}

	apiJSON(w, phaseResponse{
		State:       state,
		Progress:    state.Progress(),
		DaysInPhase: phase.DaysIn(p.PhaseEnteredAt, time.Now()),
	}, http.StatusOK)
}

func (s *Server) apiAdvancePhase(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		To int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tr, err := s.phases.Advance(id, req.To)
	if err != nil {
		engineError(w, err)
		return
	}
	apiJSON(w, tr, http.StatusOK)
}

func (s *Server) apiPhaseHistory(w http.ResponseWriter, id int64) {
	if _, err := s.props.GetByID(id); err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	history, err := s.phases.History(id)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []*phase.Transition{}
	}
	apiJSON(w, history, http.StatusOK)
}

// tradeRate is one row of the published renovation rate table.
type tradeRate struct {
	Trade renovation.Trade `json:"trade"`
	Rate  float64          `json:"rate_per_sqm"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		trades := renovation.Trades()
		rates := make([]tradeRate, 0, len(trades))
		for _, t := range trades {
			rates = append(rates, tradeRate{Trade: t, Rate: t.Rate()})
		}
		apiJSON(w, rates, http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Trades     []renovation.Trade `json:"trades"`
		LivingArea float64            `json:"living_area"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	est, err := renovation.EstimateBudget(req.Trades, req.LivingArea)
	if err != nil {
		apiError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	apiJSON(w, est, http.StatusOK)
}

func (s *Server) apiNotaryRoute(w http.ResponseWriter, r *http.Request, id int64, rest string) {
	rest = strings.TrimPrefix(rest, "/")
	ctx := r.Context()

	if rest == "" && r.Method == http.MethodGet {
		appt, err := s.appts.Get(ctx, id)
		if err != nil {
			engineError(w, err)
			return
		}
		apiJSON(w, appt, http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch rest {
	case "propose", "supersede":
		var req struct {
			Dates         []time.Time `json:"dates"`
			NotaryName    string      `json:"notary_name"`
			NotaryContact string      `json:"notary_contact"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		info := notary.NotaryInfo{Name: req.NotaryName, Contact: req.NotaryContact}

		p, err := s.props.GetByID(id)
		if err != nil {
			apiError(w, err.Error(), http.StatusNotFound)
			return
		}

		var appt *notary.Appointment
		if rest == "supersede" {
			appt, err = s.appts.Supersede(ctx, id, req.Dates, info)
		} else {
			appt, err = s.appts.Propose(ctx, id, notary.ManagedBy(p.SalesChannel), req.Dates, info)
		}
		if err != nil {
			engineError(w, err)
			return
		}
		apiJSON(w, appt, http.StatusOK)

	case "select":
		var req struct {
			Date time.Time `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		appt, err := s.appts.Select(ctx, id, req.Date)
		if err != nil {
			engineError(w, err)
			return
		}
		apiJSON(w, appt, http.StatusOK)

	case "confirm":
		appt, err := s.appts.Confirm(ctx, id)
		if err != nil {
			engineError(w, err)
			return
		}
		apiJSON(w, appt, http.StatusOK)

	case "documents":
		appt, err := s.appts.MarkDocumentsPrepared(ctx, id)
		if err != nil {
			engineError(w, err)
			return
		}
		apiJSON(w, appt, http.StatusOK)

	case "complete":
		appt, err := s.appts.Complete(ctx, id)
		if err != nil {
			engineError(w, err)
			return
		}
		apiJSON(w, appt, http.StatusOK)

	default:
		apiError(w, "not found", http.StatusNotFound)
	}
}
