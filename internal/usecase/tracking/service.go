package tracking

import (
	"context"
	"errors"
	"strings"

	domainClient "sahel-cargo/internal/domain/client"
	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
	"sahel-cargo/internal/logger"
	appErrors "sahel-cargo/pkg/errors"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no package or shipment matches the number.
var ErrNotFound = errors.New("tracking number not found")

// Service resolves public tracking lookups
type Service struct {
	parcelRepo    domainParcel.Repository
	clientRepo    domainClient.Repository
	containerRepo domainContainer.Repository
}

// NewService creates a new tracking service
func NewService(
	parcelRepo domainParcel.Repository,
	clientRepo domainClient.Repository,
	containerRepo domainContainer.Repository,
) *Service {
	return &Service{
		parcelRepo:    parcelRepo,
		clientRepo:    clientRepo,
		containerRepo: containerRepo,
	}
}

// Lookup resolves a package or shipment number, case-insensitive and
// trimmed, and builds the public tracking payload.
func (s *Service) Lookup(ctx context.Context, number string) (*TrackingResponse, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, appErrors.NewAppError("NOT_FOUND", "Tracking number not found", ErrNotFound)
	}

	if pkg, err := s.parcelRepo.GetByNumber(ctx, number); err == nil {
		return s.buildPackageResponse(ctx, pkg)
	} else if !errors.Is(err, domainParcel.ErrPackageNotFound) {
		return nil, err
	}

	shipment, err := s.parcelRepo.GetShipmentByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domainParcel.ErrShipmentNotFound) {
			logger.Debug("Tracking lookup miss", zap.String("number", number))
			return nil, appErrors.NewAppError("NOT_FOUND", "Tracking number not found", ErrNotFound)
		}
		return nil, err
	}
	return s.buildShipmentResponse(ctx, shipment)
}

func (s *Service) buildPackageResponse(ctx context.Context, pkg *domainParcel.Package) (*TrackingResponse, error) {
	cl, err := s.clientRepo.GetByID(ctx, pkg.ClientID)
	if err != nil {
		return nil, err
	}

	var cont *domainContainer.Container
	if pkg.ContainerID != nil {
		cont, err = s.containerRepo.GetByID(ctx, *pkg.ContainerID)
		if err != nil {
			return nil, err
		}
	}

	resp := &TrackingResponse{
		Number:    pkg.Number,
		Type:      "package",
		Sender:    senderInfo(cl),
		Recipient: recipientInfo(cl),
		Packages:  []PackageInfo{packageInfo(pkg)},
		Container: containerInfo(cont),
		Timeline:  BuildPublicTimeline(pkg, cont),
	}
	return resp, nil
}

func (s *Service) buildShipmentResponse(ctx context.Context, shipment *domainParcel.Shipment) (*TrackingResponse, error) {
	cl, err := s.clientRepo.GetByID(ctx, shipment.ClientID)
	if err != nil {
		return nil, err
	}

	cont, err := s.containerRepo.GetByID(ctx, shipment.ContainerID)
	if err != nil {
		return nil, err
	}

	resp := &TrackingResponse{
		Number:    shipment.Number,
		Type:      "shipment",
		Sender:    senderInfo(cl),
		Recipient: recipientInfo(cl),
		Container: containerInfo(cont),
	}

	// Packages of one shipment travel together; the first one stands in
	// for the whole shipment on the timeline.
	for i, id := range shipment.PackageIDs {
		pkg, err := s.parcelRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		resp.Packages = append(resp.Packages, packageInfo(pkg))
		if i == 0 {
			resp.Timeline = BuildPublicTimeline(pkg, cont)
		}
	}
	if len(shipment.PackageIDs) == 0 {
		resp.Timeline = []TimelineEntry{}
	}

	return resp, nil
}

func senderInfo(cl *domainClient.Client) PartyInfo {
	return PartyInfo{Name: cl.Name, City: cl.City, CountryCode: cl.CountryCode}
}

func recipientInfo(cl *domainClient.Client) PartyInfo {
	return PartyInfo{Name: cl.RecipientName, City: cl.RecipientCity, CountryCode: cl.RecipientCountryCode}
}

func packageInfo(pkg *domainParcel.Package) PackageInfo {
	return PackageInfo{
		Number:      pkg.Number,
		Status:      string(pkg.Status),
		Description: pkg.Description,
		WeightKg:    pkg.WeightKg,
		Pieces:      pkg.Pieces,
	}
}

func containerInfo(cont *domainContainer.Container) *ContainerInfo {
	if cont == nil {
		return nil
	}
	return &ContainerInfo{
		Number:           cont.Number,
		Status:           string(cont.Status),
		CurrentLocation:  cont.CurrentLocation,
		PlannedArrivalAt: cont.PlannedArrivalAt,
		ActualArrivalAt:  cont.ActualArrivalAt,
	}
}
