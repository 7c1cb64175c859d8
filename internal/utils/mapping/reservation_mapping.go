package mapping

import (
	"github.com/fieldserve/booking_backend/internal/core/domain"
	"github.com/fieldserve/booking_backend/internal/models"
)

// ToModelReservation converts a domain Reservation to a model Reservation
func ToModelReservation(d domain.Reservation) models.Reservation {
	m := models.Reservation{
		ReservationID:      d.ReservationID,
		CustomerID:         d.CustomerID,
		ServiceID:          d.ServiceID,
		ScheduledAt:        d.ScheduledAt,
		DurationMinutes:    d.DurationMinutes,
		LocationCode:       d.LocationCode,
		Status:             models.ReservationStatus(d.Status),
		Amount:             d.Amount,
		CurrencyCode:       d.CurrencyCode,
		ExternalPaymentRef: d.ExternalPaymentRef,
		AssignedAgentID:    d.AssignedAgentID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.PaymentStatus != nil {
		ps := string(*d.PaymentStatus)
		m.PaymentStatus = &ps
	}
	return m
}

// ToDomainReservation converts a model Reservation to a domain Reservation
func ToDomainReservation(m models.Reservation) domain.Reservation {
	d := domain.Reservation{
		ReservationID:      m.ReservationID,
		CustomerID:         m.CustomerID,
		ServiceID:          m.ServiceID,
		ScheduledAt:        m.ScheduledAt,
		DurationMinutes:    m.DurationMinutes,
		LocationCode:       m.LocationCode,
		Status:             domain.ReservationStatus(m.Status),
		Amount:             m.Amount,
		CurrencyCode:       m.CurrencyCode,
		ExternalPaymentRef: m.ExternalPaymentRef,
		AssignedAgentID:    m.AssignedAgentID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.PaymentStatus != nil {
		ps := domain.PaymentStatus(*m.PaymentStatus)
		d.PaymentStatus = &ps
	}
	return d
}
