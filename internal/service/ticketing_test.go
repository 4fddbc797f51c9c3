package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/greenwave/conference-ticketing/internal/clock"
	"github.com/greenwave/conference-ticketing/internal/model"
	"github.com/greenwave/conference-ticketing/internal/repository"
)

// In-memory store fakes. They reproduce the sentinel-error contracts of
// the MySQL repositories so the service sees the same behavior.

type fakeAttendees struct {
	nextID uint64
	rows   map[uint64]model.Attendee
}

func newFakeAttendees() *fakeAttendees {
	return &fakeAttendees{rows: make(map[uint64]model.Attendee)}
}

func (f *fakeAttendees) Create(_ context.Context, username, passwordHash, email string) (uint64, error) {
	for _, a := range f.rows {
		if a.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	f.nextID++
	f.rows[f.nextID] = model.Attendee{ID: f.nextID, Username: username, PasswordHash: passwordHash, Email: email}
	return f.nextID, nil
}

func (f *fakeAttendees) GetByUsername(_ context.Context, username string) (model.Attendee, error) {
	for _, a := range f.rows {
		if a.Username == username {
			return a, nil
		}
	}
	return model.Attendee{}, repository.ErrAttendeeNotFound
}

func (f *fakeAttendees) GetByID(_ context.Context, id uint64) (model.Attendee, error) {
	a, ok := f.rows[id]
	if !ok {
		return model.Attendee{}, repository.ErrAttendeeNotFound
	}
	return a, nil
}

func (f *fakeAttendees) UpdateCredentials(_ context.Context, id uint64, email, passwordHash *string) error {
	a, ok := f.rows[id]
	if !ok {
		return repository.ErrAttendeeNotFound
	}
	if email != nil {
		a.Email = *email
	}
	if passwordHash != nil {
		a.PasswordHash = *passwordHash
	}
	f.rows[id] = a
	return nil
}

func (f *fakeAttendees) Delete(_ context.Context, id uint64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrAttendeeNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakePasses struct {
	rows map[uint64]model.Pass
}

func newFakePasses() *fakePasses { return &fakePasses{rows: make(map[uint64]model.Pass)} }

func (f *fakePasses) Get(_ context.Context, attendeeID uint64) (model.Pass, error) {
	p, ok := f.rows[attendeeID]
	if !ok {
		return model.Pass{}, repository.ErrPassNotFound
	}
	return p, nil
}

func (f *fakePasses) Replace(_ context.Context, attendeeID uint64, ticketType string, ticketID uint64) error {
	f.rows[attendeeID] = model.Pass{AttendeeID: attendeeID, TicketType: ticketType, TicketID: ticketID}
	return nil
}

func (f *fakePasses) UpdateType(_ context.Context, attendeeID uint64, ticketType string) error {
	p, ok := f.rows[attendeeID]
	if !ok {
		return repository.ErrPassNotFound
	}
	p.TicketType = ticketType
	f.rows[attendeeID] = p
	return nil
}

func (f *fakePasses) Delete(_ context.Context, attendeeID uint64) error {
	if _, ok := f.rows[attendeeID]; !ok {
		return repository.ErrPassNotFound
	}
	delete(f.rows, attendeeID)
	return nil
}

type fakeLedger struct {
	nextID   uint64
	tickets  []model.Ticket
	payments []model.Payment
}

func (f *fakeLedger) AppendPurchase(_ context.Context, attendeeID uint64, ticketType, method string, amountCents uint32) (model.Ticket, model.Payment, error) {
	f.nextID++
	p := model.Payment{ID: f.nextID, AttendeeID: attendeeID, Method: method, AmountCents: amountCents}
	t := model.Ticket{ID: f.nextID, AttendeeID: attendeeID, TicketType: ticketType, PaymentID: p.ID}
	f.payments = append(f.payments, p)
	f.tickets = append(f.tickets, t)
	return t, p, nil
}

func (f *fakeLedger) ListTicketsByAttendee(_ context.Context, attendeeID uint64) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range f.tickets {
		if t.AttendeeID == attendeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListPaymentsByAttendee(_ context.Context, attendeeID uint64) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.payments {
		if p.AttendeeID == attendeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeWorkshops struct {
	rows map[uint64]model.Workshop
}

func newFakeWorkshops(ws ...model.Workshop) *fakeWorkshops {
	f := &fakeWorkshops{rows: make(map[uint64]model.Workshop)}
	for _, w := range ws {
		f.rows[w.ID] = w
	}
	return f
}

func (f *fakeWorkshops) GetByTitle(_ context.Context, title string) (model.Workshop, error) {
	for _, w := range f.rows {
		if w.Title == title {
			return w, nil
		}
	}
	return model.Workshop{}, repository.ErrWorkshopNotFound
}

func (f *fakeWorkshops) List(_ context.Context) ([]model.Workshop, error) {
	out := make([]model.Workshop, 0, len(f.rows))
	for _, w := range f.rows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWorkshops) DecrementCapacity(_ context.Context, workshopID uint64) error {
	w, ok := f.rows[workshopID]
	if !ok {
		return repository.ErrWorkshopNotFound
	}
	if w.Capacity == 0 {
		return repository.ErrNoCapacity
	}
	w.Capacity--
	f.rows[workshopID] = w
	return nil
}

type fakeReservations struct {
	nextID uint64
	rows   []model.Reservation
}

func (f *fakeReservations) Append(_ context.Context, attendeeID, workshopID uint64) (uint64, error) {
	f.nextID++
	f.rows = append(f.rows, model.Reservation{ID: f.nextID, AttendeeID: attendeeID, WorkshopID: workshopID})
	return f.nextID, nil
}

func (f *fakeReservations) ListByAttendee(_ context.Context, attendeeID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.rows {
		if r.AttendeeID == attendeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservations) ClearForAttendee(_ context.Context, attendeeID uint64) error {
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.AttendeeID != attendeeID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeReports struct {
	rows map[string]model.SalesReport
}

func newFakeReports() *fakeReports { return &fakeReports{rows: make(map[string]model.SalesReport)} }

func (f *fakeReports) AddSale(_ context.Context, date string, amountCents uint32) error {
	r := f.rows[date]
	r.Date = date
	r.TicketsSold++
	r.TotalSalesCents += uint64(amountCents)
	f.rows[date] = r
	return nil
}

func (f *fakeReports) List(_ context.Context) ([]model.SalesReport, error) {
	out := make([]model.SalesReport, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// env bundles a service wired to fakes at a fixed instant.
type env struct {
	svc          *Ticketing
	attendees    *fakeAttendees
	passes       *fakePasses
	ledger       *fakeLedger
	workshops    *fakeWorkshops
	reservations *fakeReservations
	reports      *fakeReports
}

var testInstant = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newEnv(ws ...model.Workshop) *env {
	if len(ws) == 0 {
		ws = []model.Workshop{
			{ID: 1, Title: "Solar Energy", Exhibition: "A", Capacity: 10},
			{ID: 2, Title: "Hydrogen Futures", Exhibition: "B", Capacity: 8},
			{ID: 3, Title: "Carbon Capture", Exhibition: "C", Capacity: 6},
		}
	}
	e := &env{
		attendees:    newFakeAttendees(),
		passes:       newFakePasses(),
		ledger:       &fakeLedger{},
		workshops:    newFakeWorkshops(ws...),
		reservations: &fakeReservations{},
		reports:      newFakeReports(),
	}
	e.svc = NewTicketing(
		e.attendees, e.passes, e.ledger, e.workshops, e.reservations, e.reports,
		nil, clock.NewFixed(testInstant),
		AdminCredentials{Username: "admin", Password: "letmein"},
		4, // minimal bcrypt cost keeps the suite fast
	)
	return e
}

func (e *env) register(t *testing.T, username string) model.Attendee {
	t.Helper()
	a, err := e.svc.Register(context.Background(), username, "hunter2", username+"@example.com")
	if err != nil {
		t.Fatalf("Register(%q): %v", username, err)
	}
	return a
}

func (e *env) purchase(t *testing.T, attendeeID uint64, typeName string) PurchaseResult {
	t.Helper()
	res, err := e.svc.Purchase(context.Background(), attendeeID, typeName, model.PaymentCard)
	if err != nil {
		t.Fatalf("Purchase(%s): %v", typeName, err)
	}
	return res
}

func (e *env) capacity(t *testing.T, title string) uint32 {
	t.Helper()
	w, err := e.workshops.GetByTitle(context.Background(), title)
	if err != nil {
		t.Fatalf("GetByTitle(%q): %v", title, err)
	}
	return w.Capacity
}

func TestRegisterDuplicateUsername(t *testing.T) {
	e := newEnv()
	e.register(t, "alice")
	if _, err := e.svc.Register(context.Background(), "alice", "other", "a2@example.com"); !errors.Is(err, repository.ErrUsernameExists) {
		t.Fatalf("duplicate register: got %v, want ErrUsernameExists", err)
	}
}

func TestAuthenticate(t *testing.T) {
	e := newEnv()
	e.register(t, "alice")

	a, err := e.svc.Authenticate(context.Background(), "alice", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if a.Username != "alice" {
		t.Fatalf("Authenticate returned %q, want alice", a.Username)
	}

	if _, err := e.svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := e.svc.Authenticate(context.Background(), "nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestPurchaseValidation(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")

	tests := []struct {
		name     string
		typeName string
		method   string
		want     error
	}{
		{"unknown type", "Platinum", model.PaymentCard, ErrUnknownTicketType},
		{"unknown method", "Single", "barter", ErrUnknownPaymentMethod},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.svc.Purchase(context.Background(), a.ID, tc.typeName, tc.method); !errors.Is(err, tc.want) {
				t.Fatalf("Purchase(%q, %q): got %v, want %v", tc.typeName, tc.method, err, tc.want)
			}
		})
	}
	if len(e.ledger.payments) != 0 {
		t.Fatalf("rejected purchases wrote %d payments", len(e.ledger.payments))
	}
}

func TestPurchaseCreatesPassAndLedger(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")

	res := e.purchase(t, a.ID, "Double")
	if res.Payment.AmountCents != 15000 {
		t.Fatalf("Double payment = %d cents, want 15000", res.Payment.AmountCents)
	}
	if res.Pass.TicketType != "Double" || res.Pass.TicketID != res.Ticket.ID {
		t.Fatalf("pass = %+v, want Double pass for ticket %d", res.Pass, res.Ticket.ID)
	}
}

func TestRepurchaseResetsReservations(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Full")

	if _, err := e.svc.Reserve(context.Background(), a.ID, []string{"Hydrogen Futures"}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	e.purchase(t, a.ID, "Single")

	rs, err := e.svc.GetProfile(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if len(rs.Reservations) != 0 {
		t.Fatalf("reservations after re-purchase = %d, want 0", len(rs.Reservations))
	}
	if rs.Pass == nil || rs.Pass.TicketType != "Single" {
		t.Fatalf("pass after re-purchase = %+v, want Single", rs.Pass)
	}
	// The seat taken under the old pass is not released.
	if got := e.capacity(t, "Hydrogen Futures"); got != 7 {
		t.Fatalf("capacity after re-purchase = %d, want 7", got)
	}
	// Both tickets stay in the ledger.
	if len(e.ledger.tickets) != 2 {
		t.Fatalf("ledger tickets = %d, want 2", len(e.ledger.tickets))
	}
}

func TestUpgradeChargesDeltaAndKeepsReservations(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Single")
	if _, err := e.svc.Reserve(context.Background(), a.ID, []string{"Solar Energy"}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	res, err := e.svc.Upgrade(context.Background(), a.ID, "Full")
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if res.Payment.AmountCents != 10000 {
		t.Fatalf("upgrade delta = %d cents, want 10000", res.Payment.AmountCents)
	}
	if res.Payment.Method != model.PaymentCard {
		t.Fatalf("upgrade method = %q, want %q", res.Payment.Method, model.PaymentCard)
	}
	if res.Pass.TicketType != "Full" {
		t.Fatalf("pass type after upgrade = %q, want Full", res.Pass.TicketType)
	}

	p, err := e.svc.GetProfile(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if len(p.Reservations) != 1 {
		t.Fatalf("reservations after upgrade = %d, want 1 (kept)", len(p.Reservations))
	}
}

func TestUpgradeRejectsSameOrLowerTier(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Double")
	before := len(e.ledger.payments)

	for _, target := range []string{"Double", "Single"} {
		if _, err := e.svc.Upgrade(context.Background(), a.ID, target); !errors.Is(err, ErrInvalidUpgrade) {
			t.Fatalf("Upgrade to %q: got %v, want ErrInvalidUpgrade", target, err)
		}
	}
	if len(e.ledger.payments) != before {
		t.Fatalf("rejected upgrades wrote payments")
	}
	if pass, _ := e.passes.Get(context.Background(), a.ID); pass.TicketType != "Double" {
		t.Fatalf("pass changed to %q by rejected upgrade", pass.TicketType)
	}
}

func TestUpgradeWithoutPass(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	if _, err := e.svc.Upgrade(context.Background(), a.ID, "Full"); !errors.Is(err, ErrNoActivePass) {
		t.Fatalf("Upgrade without pass: got %v, want ErrNoActivePass", err)
	}
}

func TestCancelClearsPassKeepsEverythingElse(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Full")
	if _, err := e.svc.Reserve(context.Background(), a.ID, []string{"Carbon Capture"}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if err := e.svc.Cancel(context.Background(), a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	p, err := e.svc.GetProfile(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Pass != nil {
		t.Fatalf("pass after cancel = %+v, want none", p.Pass)
	}
	if len(p.Tickets) != 1 || len(p.Payments) != 1 {
		t.Fatalf("ledger after cancel = %d tickets / %d payments, want 1/1", len(p.Tickets), len(p.Payments))
	}
	if len(p.Reservations) != 1 {
		t.Fatalf("reservations after cancel = %d, want 1 (kept)", len(p.Reservations))
	}
	// The seat is not released either.
	if got := e.capacity(t, "Carbon Capture"); got != 5 {
		t.Fatalf("capacity after cancel = %d, want 5", got)
	}

	if err := e.svc.Cancel(context.Background(), a.ID); !errors.Is(err, ErrNoActivePass) {
		t.Fatalf("second cancel: got %v, want ErrNoActivePass", err)
	}
}

func TestReserveRequiresPass(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	if _, err := e.svc.Reserve(context.Background(), a.ID, []string{"Solar Energy"}); !errors.Is(err, ErrNoActivePass) {
		t.Fatalf("Reserve without pass: got %v, want ErrNoActivePass", err)
	}
}

func TestReserveExhibitionGating(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Single") // grants exhibition A only

	_, err := e.svc.Reserve(context.Background(), a.ID, []string{"Hydrogen Futures"})
	var resErr *ReservationError
	if !errors.As(err, &resErr) {
		t.Fatalf("Reserve: got %v, want *ReservationError", err)
	}
	if !errors.Is(resErr.Err, ErrExhibitionNotGranted) {
		t.Fatalf("cause = %v, want ErrExhibitionNotGranted", resErr.Err)
	}
	if resErr.WorkshopTitle != "Hydrogen Futures" || resErr.Applied != 0 {
		t.Fatalf("error detail = %+v, want Hydrogen Futures / 0 applied", resErr)
	}
	// A denied reservation never touches capacity.
	if got := e.capacity(t, "Hydrogen Futures"); got != 8 {
		t.Fatalf("capacity after denial = %d, want 8", got)
	}
}

func TestReserveUnknownWorkshop(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Full")

	_, err := e.svc.Reserve(context.Background(), a.ID, []string{"Cold Fusion"})
	var resErr *ReservationError
	if !errors.As(err, &resErr) || !errors.Is(resErr.Err, repository.ErrWorkshopNotFound) {
		t.Fatalf("Reserve unknown: got %v, want ReservationError wrapping ErrWorkshopNotFound", err)
	}
}

func TestReserveCapacityNeverNegative(t *testing.T) {
	e := newEnv(model.Workshop{ID: 1, Title: "Solar Energy", Exhibition: "A", Capacity: 1})
	a := e.register(t, "alice")
	b := e.register(t, "bob")
	e.purchase(t, a.ID, "Single")
	e.purchase(t, b.ID, "Single")

	if _, err := e.svc.Reserve(context.Background(), a.ID, []string{"Solar Energy"}); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}
	_, err := e.svc.Reserve(context.Background(), b.ID, []string{"Solar Energy"})
	var resErr *ReservationError
	if !errors.As(err, &resErr) || !errors.Is(resErr.Err, ErrWorkshopFull) {
		t.Fatalf("second Reserve: got %v, want ReservationError wrapping ErrWorkshopFull", err)
	}
	if got := e.capacity(t, "Solar Energy"); got != 0 {
		t.Fatalf("capacity = %d, want 0", got)
	}
}

func TestReservePartialApply(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	e.purchase(t, a.ID, "Single")

	// First item is allowed, second is outside the granted exhibitions.
	applied, err := e.svc.Reserve(context.Background(), a.ID, []string{"Solar Energy", "Carbon Capture"})
	var resErr *ReservationError
	if !errors.As(err, &resErr) {
		t.Fatalf("Reserve: got %v, want *ReservationError", err)
	}
	if resErr.Applied != 1 || resErr.WorkshopTitle != "Carbon Capture" {
		t.Fatalf("error detail = %+v, want 1 applied / Carbon Capture", resErr)
	}
	if len(applied) != 1 || applied[0].WorkshopTitle != "Solar Energy" {
		t.Fatalf("applied = %+v, want only Solar Energy", applied)
	}
	// The successful first item is kept.
	if got := e.capacity(t, "Solar Energy"); got != 9 {
		t.Fatalf("Solar Energy capacity = %d, want 9", got)
	}
	if got := e.capacity(t, "Carbon Capture"); got != 6 {
		t.Fatalf("Carbon Capture capacity = %d, want 6", got)
	}
	rows, _ := e.reservations.ListByAttendee(context.Background(), a.ID)
	if len(rows) != 1 {
		t.Fatalf("stored reservations = %d, want 1", len(rows))
	}
}

func TestSalesReportAggregation(t *testing.T) {
	e := newEnv()
	a := e.register(t, "alice")
	b := e.register(t, "bob")

	e.purchase(t, a.ID, "Single") // 10000
	e.purchase(t, b.ID, "Double") // 15000
	if _, err := e.svc.Upgrade(context.Background(), b.ID, "Full"); err != nil { // +5000
		t.Fatalf("Upgrade: %v", err)
	}

	reports, err := e.svc.SalesReports(context.Background())
	if err != nil {
		t.Fatalf("SalesReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1 (same day)", len(reports))
	}
	r := reports[0]
	if r.Date != "2026-03-14" {
		t.Fatalf("report date = %q, want 2026-03-14", r.Date)
	}
	if r.TicketsSold != 3 {
		t.Fatalf("tickets sold = %d, want 3", r.TicketsSold)
	}
	if r.TotalSalesCents != 30000 {
		t.Fatalf("total = %d cents, want 30000", r.TotalSalesCents)
	}
}

func TestValidateAdmin(t *testing.T) {
	e := newEnv()
	if err := e.svc.ValidateAdmin("admin", "letmein"); err != nil {
		t.Fatalf("ValidateAdmin: %v", err)
	}
	for _, tc := range [][2]string{{"admin", "wrong"}, {"root", "letmein"}, {"", ""}} {
		if err := e.svc.ValidateAdmin(tc[0], tc[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("ValidateAdmin(%q, %q): got %v, want ErrInvalidCredentials", tc[0], tc[1], err)
		}
	}
}

func TestOperationsRequireIdentity(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	if _, err := e.svc.Purchase(ctx, 0, "Single", model.PaymentCard); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Purchase(0): got %v", err)
	}
	if _, err := e.svc.Upgrade(ctx, 0, "Full"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Upgrade(0): got %v", err)
	}
	if err := e.svc.Cancel(ctx, 0); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Cancel(0): got %v", err)
	}
	if _, err := e.svc.Reserve(ctx, 0, []string{"Solar Energy"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("Reserve(0): got %v", err)
	}
}

// End to end: the whole attendee journey through the service layer.
func TestAttendeeJourney(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	a := e.register(t, "alice")
	if _, err := e.svc.Authenticate(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	res := e.purchase(t, a.ID, "Single")
	if res.Payment.AmountCents != 10000 {
		t.Fatalf("Single price = %d cents, want 10000", res.Payment.AmountCents)
	}

	if _, err := e.svc.Reserve(ctx, a.ID, []string{"Solar Energy"}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := e.capacity(t, "Solar Energy"); got != 9 {
		t.Fatalf("capacity = %d, want 9", got)
	}

	up, err := e.svc.Upgrade(ctx, a.ID, "Full")
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if up.Payment.AmountCents != 10000 {
		t.Fatalf("upgrade delta = %d cents, want 10000", up.Payment.AmountCents)
	}

	p, err := e.svc.GetProfile(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Pass == nil || p.Pass.TicketType != "Full" {
		t.Fatalf("pass = %+v, want Full", p.Pass)
	}
	if len(p.Reservations) != 1 {
		t.Fatalf("reservations = %d, want 1", len(p.Reservations))
	}

	if err := e.svc.Cancel(ctx, a.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	p, err = e.svc.GetProfile(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetProfile after cancel: %v", err)
	}
	if p.Pass != nil {
		t.Fatalf("pass survived cancel: %+v", p.Pass)
	}
	if len(p.Tickets) != 2 || len(p.Payments) != 2 {
		t.Fatalf("ledger = %d tickets / %d payments, want 2/2", len(p.Tickets), len(p.Payments))
	}
}
