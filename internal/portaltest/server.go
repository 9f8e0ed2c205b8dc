// Package portaltest provides an in-memory stand-in for the fest
// backend, with just enough behavior for client tests: JWT-guarded
// staff routes, bulk registration in both payment modes, cash tokens,
// attendance, and CSV exports.
package portaltest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/SXPXL/eventflow/internal/model"
)

type staffAccount struct {
	model.StaffUser
	passwordHash []byte
}

// Server is a fake portal backed by in-memory maps. All mutating
// helpers are safe for concurrent use with in-flight requests.
type Server struct {
	httpSrv   *httptest.Server
	jwtSecret []byte

	mu           sync.Mutex
	events       map[model.EventID]*model.Event
	nextEvent    model.EventID
	participants map[model.UID]*model.Participant
	regs         []*model.Registration
	nextReg      model.RegistrationID
	staff        map[model.StaffID]*staffAccount
	nextStaff    model.StaffID
	tokens       map[string]float64
	orders       map[string]*model.PaymentOrder
	orderRegs    map[string][]model.RegistrationID
	nextUID      int
	nextOrder    int
}

// New starts a fake portal with the bootstrap admin account
// (admin/admin) already present. Callers must Close it.
func New() *Server {
	s := &Server{
		jwtSecret:    []byte("portaltest-secret"),
		events:       make(map[model.EventID]*model.Event),
		nextEvent:    1,
		participants: make(map[model.UID]*model.Participant),
		nextReg:      1,
		staff:        make(map[model.StaffID]*staffAccount),
		nextStaff:    1,
		tokens:       make(map[string]float64),
		orders:       make(map[string]*model.PaymentOrder),
		orderRegs:    make(map[string][]model.RegistrationID),
	}
	s.addStaffLocked("admin", "admin", model.RoleAdmin, 0)
	s.httpSrv = httptest.NewServer(s.router())
	return s
}

func (s *Server) URL() string { return s.httpSrv.URL }

func (s *Server) Close() { s.httpSrv.Close() }

func (s *Server) router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/check-uid/{uid}", s.handleCheckUID).Methods(http.MethodGet)
	r.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{uid}", s.handleUpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
	r.HandleFunc("/events/validate-team", s.handleValidateTeam).Methods(http.MethodPost)
	r.HandleFunc("/events/register-bulk", s.handleRegisterBulk).Methods(http.MethodPost)
	r.HandleFunc("/payment/status/{order_id}", s.handlePaymentStatus).Methods(http.MethodGet)
	r.HandleFunc("/admin/login", s.handleLogin).Methods(http.MethodPost)

	admin := r.NewRoute().Subrouter()
	admin.Use(s.requireRole(model.RoleAdmin))
	admin.HandleFunc("/events", s.handleCreateEvent).Methods(http.MethodPost)
	admin.HandleFunc("/events/{id}", s.handleDeleteEvent).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/users", s.handleListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/admin/users/search", s.handleSearchUsers).Methods(http.MethodGet)
	admin.HandleFunc("/admin/volunteers", s.handleListStaff).Methods(http.MethodGet)
	admin.HandleFunc("/admin/volunteers", s.handleCreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/admin/volunteers/{id}", s.handleDeleteStaff).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/export/master", s.handleExportMaster).Methods(http.MethodGet)
	admin.HandleFunc("/staff/export/event/{id}", s.handleExportEvent).Methods(http.MethodGet)

	staff := r.PathPrefix("/staff").Subrouter()
	staff.Use(s.requireRole(""))
	staff.HandleFunc("/generate-token", s.handleGenerateToken).Methods(http.MethodPost)
	staff.HandleFunc("/mark-attendance", s.handleMarkAttendance).Methods(http.MethodPost)
	staff.HandleFunc("/all-registrations", s.handleAllRegistrations).Methods(http.MethodGet)
	staff.HandleFunc("/walk-in-register", s.handleWalkIn).Methods(http.MethodPost)

	return r
}

// requireRole checks the bearer token and, when role is set, that the
// authenticated account holds it. Admin passes every gate.
func (s *Server) requireRole(role model.StaffRole) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acct := s.authenticate(r)
			if acct == nil {
				writeDetail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if role != "" && !acct.Role.CanUse(role) {
				writeDetail(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) authenticate(r *http.Request) *staffAccount {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil
	}
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !tok.Valid {
		return nil
	}
	claims := tok.Claims.(*jwt.RegisteredClaims)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.staff {
		if acct.Username == claims.Subject {
			return acct
		}
	}
	return nil
}

func (s *Server) mintToken(acct *staffAccount) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, roleClaims{
		Role: acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	})
	return tok.SignedString(s.jwtSecret)
}

type roleClaims struct {
	Role model.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) addStaffLocked(username, password string, role model.StaffRole, eventID model.EventID) *staffAccount {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	acct := &staffAccount{
		StaffUser: model.StaffUser{
			ID:              s.nextStaff,
			Username:        username,
			Role:            role,
			AssignedEventID: eventID,
		},
		passwordHash: hash,
	}
	s.staff[acct.ID] = acct
	s.nextStaff++
	return acct
}

// AddStaff seeds a staff account and returns its descriptor.
func (s *Server) AddStaff(username, password string, role model.StaffRole, eventID model.EventID) model.StaffUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addStaffLocked(username, password, role, eventID).StaffUser
}

// AddEvent seeds an event, assigning it an ID.
func (s *Server) AddEvent(ev model.Event) model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.ID = s.nextEvent
	s.nextEvent++
	s.events[ev.ID] = &ev
	return ev
}

// AddParticipant seeds a participant, minting a UID when absent.
func (s *Server) AddParticipant(p model.Participant) model.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.UID == "" {
		p.UID = s.mintUIDLocked()
	}
	s.participants[p.UID] = &p
	return p
}

// AddRegistration seeds a registration record directly.
func (s *Server) AddRegistration(reg model.Registration) model.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg.ID = s.nextReg
	s.nextReg++
	if ev, ok := s.events[reg.EventID]; ok {
		reg.EventName = ev.Name
	}
	if p, ok := s.participants[reg.UserUID]; ok {
		reg.UserName = p.Name
	}
	s.regs = append(s.regs, &reg)
	return reg
}

// SettleOrder moves an order to its final status. A PAID settlement
// also flips the order's registrations to paid.
func (s *Server) SettleOrder(orderID string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return
	}
	order.Status = status
	if status != model.OrderPaid {
		return
	}
	for _, id := range s.orderRegs[orderID] {
		for _, reg := range s.regs {
			if reg.ID == id {
				reg.PaymentStatus = model.PaymentPaid
			}
		}
	}
	if p, ok := s.participants[order.UserUID]; ok {
		p.PaymentStatus = model.PaymentPaid
	}
}

// IssuedTokens returns the outstanding cash tokens.
func (s *Server) IssuedTokens() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.tokens))
	for k, v := range s.tokens {
		out[k] = v
	}
	return out
}

func (s *Server) mintUIDLocked() model.UID {
	s.nextUID++
	return model.UID(fmt.Sprintf("EVT-%05d", s.nextUID))
}
