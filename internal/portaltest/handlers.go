package portaltest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func (s *Server) handleCheckUID(w http.ResponseWriter, r *http.Request) {
	uid := model.UID(mux.Vars(r)["uid"])

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[uid]
	if !ok {
		writeJSON(w, http.StatusOK, portal.CheckUIDResponse{
			Exists: false, Message: "UID not found",
		})
		return
	}
	var registered []model.RegisteredEvent
	for _, reg := range s.regs {
		if reg.UserUID != uid {
			continue
		}
		if ev, ok := s.events[reg.EventID]; ok {
			registered = append(registered, model.RegisteredEvent{
				Event: *ev, PaymentStatus: reg.PaymentStatus,
			})
		}
	}
	writeJSON(w, http.StatusOK, portal.CheckUIDResponse{
		Exists: true, Participant: p, Registered: registered,
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req portal.RegisterParticipantRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" {
		writeDetail(w, http.StatusBadRequest, "name and email are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.Email == req.Email && !p.IsShadow {
			writeDetail(w, http.StatusConflict, "email already registered")
			return
		}
	}
	p := &model.Participant{
		UID:     s.mintUIDLocked(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		College: req.College,
	}
	s.participants[p.UID] = p
	writeJSON(w, http.StatusCreated, portal.RegisterParticipantResponse{
		UID: p.UID, Name: p.Name, Email: p.Email, Message: "registered",
	})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	uid := model.UID(mux.Vars(r)["uid"])
	var req portal.RegisterParticipantRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[uid]
	if !ok {
		writeDetail(w, http.StatusNotFound, "participant not found")
		return
	}
	p.Name, p.Email, p.Phone, p.College = req.Name, req.Email, req.Phone, req.College
	p.IsShadow = false
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req portal.CreateEventRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ev := &model.Event{
		ID:          s.nextEvent,
		Name:        req.Name,
		Type:        req.Type,
		Fee:         req.Fee,
		MinTeamSize: req.MinTeamSize,
		MaxTeamSize: req.MaxTeamSize,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	}
	s.nextEvent++
	s.events[ev.ID] = ev
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[model.EventID(id)]; !ok {
		writeDetail(w, http.StatusNotFound, "event not found")
		return
	}
	delete(s.events, model.EventID(id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

func (s *Server) handleValidateTeam(w http.ResponseWriter, r *http.Request) {
	var req portal.ValidateTeamRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	for _, email := range req.Emails {
		if seen[email] {
			writeJSON(w, http.StatusOK, portal.ValidateTeamResponse{
				Valid: false, Detail: fmt.Sprintf("%s appears twice in the roster", email),
			})
			return
		}
		seen[email] = true
		for _, p := range s.participants {
			if p.Email != email {
				continue
			}
			for _, reg := range s.regs {
				if reg.UserUID == p.UID && reg.EventID == req.EventID && reg.PaymentStatus == model.PaymentPaid {
					writeJSON(w, http.StatusOK, portal.ValidateTeamResponse{
						Valid: false, Detail: fmt.Sprintf("%s is already registered for this event", email),
					})
					return
				}
			}
		}
	}
	writeJSON(w, http.StatusOK, portal.ValidateTeamResponse{Valid: true})
}

func (s *Server) handleRegisterBulk(w http.ResponseWriter, r *http.Request) {
	var req portal.BulkRegisterRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	leader, ok := s.participants[req.LeaderUID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "leader UID not found")
		return
	}
	if len(req.Items) == 0 {
		writeDetail(w, http.StatusBadRequest, "no items to register")
		return
	}

	var total float64
	for _, item := range req.Items {
		ev, ok := s.events[item.EventID]
		if !ok {
			writeDetail(w, http.StatusNotFound, fmt.Sprintf("event %d not found", item.EventID))
			return
		}
		total += ev.Fee
	}

	switch req.PaymentMode {
	case "CASH":
		amount, ok := s.tokens[req.CashToken]
		if !ok {
			writeDetail(w, http.StatusBadRequest, "invalid cash token")
			return
		}
		if amount < total {
			writeDetail(w, http.StatusBadRequest, "cash token does not cover the total")
			return
		}
		delete(s.tokens, req.CashToken)
		s.recordItemsLocked(leader, req.Items, model.PaymentPaid)
		leader.PaymentStatus = model.PaymentPaid
		writeJSON(w, http.StatusOK, portal.BulkRegisterResponse{
			Status: "success", Message: "registration confirmed",
		})
	case "ONLINE":
		ids := s.recordItemsLocked(leader, req.Items, model.PaymentPending)
		s.nextOrder++
		orderID := fmt.Sprintf("order_%d", s.nextOrder)
		s.orders[orderID] = &model.PaymentOrder{
			OrderID: orderID,
			Status:  model.OrderPending,
			Amount:  total,
			UserUID: leader.UID,
		}
		s.orderRegs[orderID] = ids
		writeJSON(w, http.StatusOK, portal.BulkRegisterResponse{
			PaymentSessionID: "session_" + orderID,
			OrderID:          orderID,
		})
	default:
		writeDetail(w, http.StatusBadRequest, "unknown payment mode")
	}
}

func (s *Server) recordItemsLocked(leader *model.Participant, items []portal.BulkRegisterItem, status model.PaymentStatus) []model.RegistrationID {
	var ids []model.RegistrationID
	add := func(uid model.UID, name string, item portal.BulkRegisterItem) {
		reg := &model.Registration{
			ID:            s.nextReg,
			UserUID:       uid,
			UserName:      name,
			EventID:       item.EventID,
			EventName:     s.events[item.EventID].Name,
			TeamName:      item.TeamName,
			PaymentStatus: status,
		}
		s.nextReg++
		s.regs = append(s.regs, reg)
		ids = append(ids, reg.ID)
	}
	for _, item := range items {
		add(leader.UID, leader.Name, item)
		for _, mate := range item.Teammates {
			uid := s.findOrShadowLocked(mate)
			add(uid, mate.Name, item)
		}
	}
	return ids
}

// findOrShadowLocked resolves a teammate email to an existing
// participant or mints a shadow profile for them.
func (s *Server) findOrShadowLocked(mate model.Teammate) model.UID {
	for _, p := range s.participants {
		if p.Email == mate.Email {
			return p.UID
		}
	}
	p := &model.Participant{
		UID:      s.mintUIDLocked(),
		Name:     mate.Name,
		Email:    mate.Email,
		IsShadow: true,
	}
	s.participants[p.UID] = p
	return p.UID
}

func (s *Server) handlePaymentStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req portal.StaffLoginRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	var acct *staffAccount
	for _, a := range s.staff {
		if a.Username == req.Username {
			acct = a
			break
		}
	}
	s.mu.Unlock()

	if acct == nil || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.mintToken(acct)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "token minting failed")
		return
	}
	writeJSON(w, http.StatusOK, portal.StaffLoginResponse{
		AccessToken: token, User: acct.StaffUser,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.participantsLocked(""))
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.participantsLocked(q))
}

func (s *Server) participantsLocked(query string) []model.Participant {
	query = strings.ToLower(query)
	out := make([]model.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(string(p.UID)), query) &&
			!strings.Contains(strings.ToLower(p.Email), query) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

func (s *Server) handleListStaff(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.StaffUser, 0, len(s.staff))
	for _, a := range s.staff {
		out = append(out, a.StaffUser)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req portal.CreateStaffRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.staff {
		if a.Username == req.Username {
			writeDetail(w, http.StatusConflict, "username already taken")
			return
		}
	}
	acct := s.addStaffLocked(req.Username, req.Password, req.Role, req.AssignedEventID)
	writeJSON(w, http.StatusCreated, acct.StaffUser)
}

func (s *Server) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	if model.StaffID(id) == model.ReservedStaffID {
		writeDetail(w, http.StatusBadRequest, "cannot delete the primary admin account")
		return
	}
	if _, ok := s.staff[model.StaffID(id)]; !ok {
		writeDetail(w, http.StatusNotFound, "staff account not found")
		return
	}
	delete(s.staff, model.StaffID(id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (s *Server) handleGenerateToken(w http.ResponseWriter, r *http.Request) {
	var req portal.GenerateTokenRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeDetail(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	token := fmt.Sprintf("CASH-%04d", len(s.tokens)+1)
	s.tokens[token] = req.Amount
	writeJSON(w, http.StatusOK, model.CashToken{Token: token, Amount: req.Amount})
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req portal.MarkAttendanceRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, reg := range s.regs {
		if reg.UserUID != req.UserUID || reg.EventID != req.EventID {
			continue
		}
		if reg.PaymentStatus != model.PaymentPaid {
			writeDetail(w, http.StatusBadRequest, "payment pending")
			return
		}
		if reg.Attended {
			writeDetail(w, http.StatusConflict, "already checked in")
			return
		}
		reg.Attended = true
		if ev, ok := s.events[req.EventID]; ok {
			ev.TotalAttended++
		}
		writeJSON(w, http.StatusOK, portal.MarkAttendanceResponse{
			Message: "attendance marked", UserName: reg.UserName,
		})
		return
	}
	writeDetail(w, http.StatusNotFound, "registration not found")
}

func (s *Server) handleAllRegistrations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Registration, 0, len(s.regs))
	for _, reg := range s.regs {
		out = append(out, *reg)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWalkIn(w http.ResponseWriter, r *http.Request) {
	var req portal.WalkInRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[req.EventID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "event not found")
		return
	}

	var resp portal.WalkInResponse
	record := func(name, email, role string) {
		p := &model.Participant{
			UID:           s.mintUIDLocked(),
			Name:          name,
			Email:         email,
			PaymentStatus: model.PaymentPaid,
		}
		s.participants[p.UID] = p
		s.regs = append(s.regs, &model.Registration{
			ID:            s.nextReg,
			UserUID:       p.UID,
			UserName:      p.Name,
			EventID:       ev.ID,
			EventName:     ev.Name,
			TeamName:      teamLabel(req, role),
			PaymentStatus: model.PaymentPaid,
		})
		s.nextReg++
		resp.Data.Participants = append(resp.Data.Participants, portal.WalkInParticipant{
			Name: p.Name, UID: p.UID, Role: role,
		})
	}
	record(req.Name, req.Email, "leader")
	for _, m := range req.Members {
		record(m.Name, m.Email, "member")
	}
	resp.Data.TotalPaid = ev.Fee
	ev.TotalRegistrations++
	ev.Revenue += ev.Fee
	writeJSON(w, http.StatusCreated, resp)
}

func teamLabel(req portal.WalkInRequest, role string) string {
	if len(req.Members) == 0 {
		return ""
	}
	return req.Name + "'s team"
}

func (s *Server) handleExportEvent(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	filter := r.URL.Query().Get("filter")
	sortBy := r.URL.Query().Get("sort")

	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []*model.Registration
	for _, reg := range s.regs {
		if reg.EventID != model.EventID(id) {
			continue
		}
		if filter == "PRESENT" && !reg.Attended {
			continue
		}
		if filter == "ABSENT" && reg.Attended {
			continue
		}
		rows = append(rows, reg)
	}
	sort.Slice(rows, func(i, j int) bool {
		if sortBy == "TEAM" && rows[i].TeamName != rows[j].TeamName {
			return rows[i].TeamName < rows[j].TeamName
		}
		return rows[i].UserName < rows[j].UserName
	})
	s.writeCSV(w, rows)
}

func (s *Server) handleExportMaster(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeCSV(w, s.regs)
}

func (s *Server) writeCSV(w http.ResponseWriter, rows []*model.Registration) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write([]string{"Name", "UID", "Event", "Team", "Payment", "Attended"})
	for _, reg := range rows {
		attended := "NO"
		if reg.Attended {
			attended = "YES"
		}
		_ = cw.Write([]string{
			reg.UserName,
			string(reg.UserUID),
			reg.EventName,
			reg.TeamName,
			string(reg.PaymentStatus),
			attended,
		})
	}
	cw.Flush()
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
