package postgres

import (
	"sahel-cargo/internal/domain/client"
	"sahel-cargo/internal/domain/container"
	"sahel-cargo/internal/domain/notification"
	"sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/domain/user"
	"sahel-cargo/internal/infrastructure/database/postgres/models"
)

func toContainerModel(c *container.Container) *models.ContainerModel {
	return &models.ContainerModel{
		ID:                 c.ID,
		Number:             c.Number,
		Status:             string(c.Status),
		CurrentLocation:    c.CurrentLocation,
		PlannedDepartureAt: c.PlannedDepartureAt,
		ActualDepartureAt:  c.ActualDepartureAt,
		PlannedArrivalAt:   c.PlannedArrivalAt,
		ActualArrivalAt:    c.ActualArrivalAt,
		CreatedBy:          c.CreatedBy,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toContainerEntity(m *models.ContainerModel) *container.Container {
	c := &container.Container{
		ID:                 m.ID,
		Number:             m.Number,
		Status:             container.Status(m.Status),
		CurrentLocation:    m.CurrentLocation,
		PlannedDepartureAt: m.PlannedDepartureAt,
		ActualDepartureAt:  m.ActualDepartureAt,
		PlannedArrivalAt:   m.PlannedArrivalAt,
		ActualArrivalAt:    m.ActualArrivalAt,
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	for i := range m.Updates {
		c.Updates = append(c.Updates, *toTrackingUpdateEntity(&m.Updates[i]))
	}
	return c
}

func toTrackingUpdateModel(u *container.TrackingUpdate) *models.TrackingUpdateModel {
	return &models.TrackingUpdateModel{
		ID:          u.ID,
		ContainerID: u.ContainerID,
		Location:    u.Location,
		Description: u.Description,
		Latitude:    u.Latitude,
		Longitude:   u.Longitude,
		IsPublic:    u.IsPublic,
		CreatedBy:   u.CreatedBy,
		CreatedAt:   u.CreatedAt,
	}
}

func toTrackingUpdateEntity(m *models.TrackingUpdateModel) *container.TrackingUpdate {
	return &container.TrackingUpdate{
		ID:          m.ID,
		ContainerID: m.ContainerID,
		Location:    m.Location,
		Description: m.Description,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		IsPublic:    m.IsPublic,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func toPackageModel(p *parcel.Package) *models.PackageModel {
	return &models.PackageModel{
		ID:            p.ID,
		Number:        p.Number,
		ClientID:      p.ClientID,
		ContainerID:   p.ContainerID,
		ShipmentID:    p.ShipmentID,
		Status:        string(p.Status),
		Description:   p.Description,
		WeightKg:      p.WeightKg,
		Pieces:        p.Pieces,
		PickupAt:      p.PickupAt,
		DeliveryAt:    p.DeliveryAt,
		PriceEUR:      p.PriceEUR,
		AmountPaidEUR: p.AmountPaidEUR,
		PaymentStatus: string(p.PaymentStatus),
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPackageEntity(m *models.PackageModel) *parcel.Package {
	return &parcel.Package{
		ID:            m.ID,
		Number:        m.Number,
		ClientID:      m.ClientID,
		ContainerID:   m.ContainerID,
		ShipmentID:    m.ShipmentID,
		Status:        parcel.Status(m.Status),
		Description:   m.Description,
		WeightKg:      m.WeightKg,
		Pieces:        m.Pieces,
		PickupAt:      m.PickupAt,
		DeliveryAt:    m.DeliveryAt,
		PriceEUR:      m.PriceEUR,
		AmountPaidEUR: m.AmountPaidEUR,
		PaymentStatus: parcel.PaymentStatus(m.PaymentStatus),
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toShipmentModel(s *parcel.Shipment) *models.ShipmentModel {
	return &models.ShipmentModel{
		ID:          s.ID,
		Number:      s.Number,
		ClientID:    s.ClientID,
		ContainerID: s.ContainerID,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toShipmentEntity(m *models.ShipmentModel) *parcel.Shipment {
	s := &parcel.Shipment{
		ID:          m.ID,
		Number:      m.Number,
		ClientID:    m.ClientID,
		ContainerID: m.ContainerID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for i := range m.Packages {
		s.PackageIDs = append(s.PackageIDs, m.Packages[i].ID)
	}
	return s
}

func toClientModel(c *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:                   c.ID,
		Name:                 c.Name,
		Phone:                c.Phone,
		Email:                c.Email,
		Address:              c.Address,
		City:                 c.City,
		CountryCode:          c.CountryCode,
		RecipientName:        c.RecipientName,
		RecipientPhone:       c.RecipientPhone,
		RecipientAddress:     c.RecipientAddress,
		RecipientCity:        c.RecipientCity,
		RecipientCountryCode: c.RecipientCountryCode,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func toClientEntity(m *models.ClientModel) *client.Client {
	return &client.Client{
		ID:                   m.ID,
		Name:                 m.Name,
		Phone:                m.Phone,
		Email:                m.Email,
		Address:              m.Address,
		City:                 m.City,
		CountryCode:          m.CountryCode,
		RecipientName:        m.RecipientName,
		RecipientPhone:       m.RecipientPhone,
		RecipientAddress:     m.RecipientAddress,
		RecipientCity:        m.RecipientCity,
		RecipientCountryCode: m.RecipientCountryCode,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toOutboundModel(o *notification.OutboundMessage) *models.OutboundMessageModel {
	return &models.OutboundMessageModel{
		ID:               o.ID,
		ShipmentID:       o.ShipmentID,
		ClientID:         o.ClientID,
		ContainerID:      o.ContainerID,
		Recipient:        o.Recipient,
		Body:             o.Body,
		Status:           string(o.Status),
		GatewayMessageID: o.GatewayMessageID,
		Error:            o.Error,
		CreatedAt:        o.CreatedAt,
		SentAt:           o.SentAt,
	}
}

func toOutboundEntity(m *models.OutboundMessageModel) *notification.OutboundMessage {
	return &notification.OutboundMessage{
		ID:               m.ID,
		ShipmentID:       m.ShipmentID,
		ClientID:         m.ClientID,
		ContainerID:      m.ContainerID,
		Recipient:        m.Recipient,
		Body:             m.Body,
		Status:           notification.DeliveryStatus(m.Status),
		GatewayMessageID: m.GatewayMessageID,
		Error:            m.Error,
		CreatedAt:        m.CreatedAt,
		SentAt:           m.SentAt,
	}
}

func toNotificationModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:          n.ID,
		ClientID:    n.ClientID,
		ShipmentID:  n.ShipmentID,
		ContainerID: n.ContainerID,
		Title:       n.Title,
		Message:     n.Message,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

func toNotificationEntity(m *models.NotificationModel) *notification.Notification {
	return &notification.Notification{
		ID:          m.ID,
		ClientID:    m.ClientID,
		ShipmentID:  m.ShipmentID,
		ContainerID: m.ContainerID,
		Title:       m.Title,
		Message:     m.Message,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         user.Role(m.Role),
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
