package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-pos/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-pos/internal/httperr"
	"github.com/BruksfildServices01/salon-pos/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	salon        models.Salon
	services     map[uint]models.Service
	stylists     map[uint]models.Stylist
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: models.Salon{ID: 1, Name: "Glow", Timezone: "Asia/Kolkata"},
		services: map[uint]models.Service{
			10: {ID: 10, SalonID: 1, Name: "Haircut", DurationMin: 60, Active: true},
			11: {ID: 11, SalonID: 1, Name: "Trim", DurationMin: 30, Active: true},
			12: {ID: 12, SalonID: 1, Name: "Retired", DurationMin: 30, Active: false},
			13: {ID: 13, SalonID: 1, Name: "Consultation", DurationMin: 0, Active: true},
		},
		stylists: map[uint]models.Stylist{
			1: {ID: 1, SalonID: 1, Name: "Asha", Available: true},
			2: {ID: 2, SalonID: 1, Name: "Ravi", Available: true},
			3: {ID: 3, SalonID: 1, Name: "Off Today", Available: false},
		},
		clients:      map[uint]models.Client{},
		appointments: map[uint]models.Appointment{},
		nextID:       100,
	}
}

func (f *fakeRepo) addBreak(stylistID uint, start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.stylists[stylistID]
	st.Breaks = append(st.Breaks, models.StylistBreak{
		StylistID: stylistID,
		Position:  len(st.Breaks),
		StartTime: start,
		EndTime:   end,
		Reason:    "Lunch",
	})
	f.stylists[stylistID] = st
}

func (f *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if id != f.salon.ID {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	s := f.salon
	return &s, nil
}

func (f *fakeRepo) GetService(_ context.Context, _ uint, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &s, nil
}

func (f *fakeRepo) GetStylist(_ context.Context, _ uint, id uint) (*models.Stylist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stylists[id]
	if !ok {
		return nil, httperr.ErrBusiness("stylist_not_found")
	}
	return &s, nil
}

func (f *fakeRepo) ListStylists(_ context.Context, _ uint) ([]models.Stylist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Stylist, 0, len(f.stylists))
	for _, s := range f.stylists {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetClient(_ context.Context, _ uint, id uint) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return &c, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.Name == name {
			return &c, nil
		}
	}
	f.nextID++
	c := models.Client{ID: f.nextID, SalonID: salonID, Name: name, Phone: phone, Email: email}
	f.clients[c.ID] = c
	return &c, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, _ uint, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, _ uint, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appointments[id]; !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(
	_ context.Context,
	_ uint,
	stylistID uint,
	start, end time.Time,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if stylistID != 0 && ap.StylistID != stylistID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		ap.Stylist = f.stylists[ap.StylistID]
		ap.Service = f.services[ap.ServiceID]
		if ap.ClientID != nil {
			c := f.clients[*ap.ClientID]
			ap.Client = &c
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}
