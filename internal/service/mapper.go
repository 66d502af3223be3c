package service

import (
	"freight-marketplace-api/internal/entity"

	"github.com/google/uuid"
)

func mapLoad(l *entity.Load) *entity.LoadOutputModel {
	out := &entity.LoadOutputModel{
		Id:            l.Id.String(),
		ShipperId:     l.ShipperId.String(),
		OriginText:    l.OriginText,
		OriginCity:    l.OriginCity,
		OriginState:   l.OriginState,
		DestText:      l.DestText,
		DestCity:      l.DestCity,
		DestState:     l.DestState,
		CargoType:     l.CargoType,
		CargoWeightKg: l.CargoWeightKg,
		BudgetAmount:  l.BudgetAmount,
		Negotiable:    l.Negotiable,
		PickupDate:    l.PickupDate,
		DeliveryDate:  l.DeliveryDate,
		Status:        l.Status,
		BidCount:      l.BidCount,
		CreatedAt:     l.CreatedAt,
	}
	if l.HasAcceptedBid {
		out.AcceptedBidId = l.AcceptedBidId.String()
	}

	return out
}

func mapLoads(loads []entity.Load) []entity.LoadOutputModel {
	s := make([]entity.LoadOutputModel, 0)
	for _, load := range loads {
		s = append(s, *mapLoad(&load))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	out := &entity.BidOutputModel{
		Id:             b.Id.String(),
		LoadId:         b.LoadId.String(),
		CarrierId:      b.CarrierId.String(),
		Amount:         b.Amount,
		EstimatedHours: b.EstimatedHours,
		Message:        b.Message,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
	}
	if b.HasVehicle {
		out.VehicleId = b.VehicleId.String()
	}

	return out
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}

func mapTrip(t *entity.Trip) *entity.TripOutputModel {
	out := &entity.TripOutputModel{
		Id:           t.Id.String(),
		LoadId:       t.LoadId.String(),
		BidId:        t.BidId.String(),
		CarrierId:    t.CarrierId.String(),
		AgreedAmount: t.AgreedAmount,
		PlatformFee:  t.PlatformFee,
		TotalAmount:  t.TotalAmount,
		Status:       t.Status,
		StartedAt:    t.StartedAt,
		PickedUpAt:   t.PickedUpAt,
		DeliveredAt:  t.DeliveredAt,
		ConfirmedAt:  t.ConfirmedAt,
		PaymentRef:   t.PaymentRef,
		PaidAt:       t.PaidAt,
		CreatedAt:    t.CreatedAt,
	}
	if t.HasVehicle {
		out.VehicleId = t.VehicleId.String()
	}

	return out
}

func mapTrips(trips []entity.Trip) []entity.TripOutputModel {
	s := make([]entity.TripOutputModel, 0)
	for _, trip := range trips {
		s = append(s, *mapTrip(&trip))
	}

	return s
}

func mapDispute(d *entity.Dispute) *entity.DisputeOutputModel {
	out := &entity.DisputeOutputModel{
		Id:              d.Id.String(),
		TripId:          d.TripId.String(),
		LoadId:          d.LoadId.String(),
		FiledBy:         d.FiledBy.String(),
		IssueType:       d.IssueType,
		Description:     d.Description,
		EvidenceUrls:    d.EvidenceUrls,
		Status:          d.Status,
		CarrierResponse: d.CarrierResponse,
		ResolutionNote:  d.ResolutionNote,
		ResolvedAt:      d.ResolvedAt,
		CreatedAt:       d.CreatedAt,
	}
	if d.ResolvedBy != uuid.Nil {
		out.ResolvedBy = d.ResolvedBy.String()
	}

	return out
}

func mapInvitation(i *entity.BidInvitation) *entity.InvitationOutputModel {
	return &entity.InvitationOutputModel{
		Id:        i.Id.String(),
		LoadId:    i.LoadId.String(),
		ShipperId: i.ShipperId.String(),
		CarrierId: i.CarrierId.String(),
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}

func mapInvitations(invitations []entity.BidInvitation) []entity.InvitationOutputModel {
	s := make([]entity.InvitationOutputModel, 0)
	for _, invitation := range invitations {
		s = append(s, *mapInvitation(&invitation))
	}

	return s
}

func mapTrackingEvent(e *entity.TrackingEvent) *entity.TrackingEventOutputModel {
	out := &entity.TrackingEventOutputModel{
		Id:        e.Id.String(),
		TripId:    e.TripId.String(),
		EventType: e.EventType,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
	if e.ActorId != uuid.Nil {
		out.ActorId = e.ActorId.String()
	}

	return out
}

func mapTrackingEvents(events []entity.TrackingEvent) []entity.TrackingEventOutputModel {
	s := make([]entity.TrackingEventOutputModel, 0)
	for _, event := range events {
		s = append(s, *mapTrackingEvent(&event))
	}

	return s
}
