package tracking

import (
	"fmt"
	"time"

	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
)

// Stage tags carried by timeline entries
const (
	StageRegistered  = "REGISTERED"
	StageCollected   = "COLLECTED"
	StageInContainer = "IN_CONTAINER"
	StageInTransit   = "IN_TRANSIT"
	StageDelivered   = "DELIVERED"
	StageUpcoming    = "UPCOMING_DELIVERY"
)

// TimelineEntry is one derived lifecycle event. Entries are computed on read
// from the package and its container's tracking history, never persisted.
type TimelineEntry struct {
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Completed   bool       `json:"completed"`
	Current     bool       `json:"current"`
}

const dateLayout = "02/01/2006"

// BuildTimeline derives the ordered lifecycle timeline for a package,
// oldest stage first. Each stage is appended only when its precondition
// holds; the last completed entry is marked current.
func BuildTimeline(pkg *domainParcel.Package, cont *domainContainer.Container) []TimelineEntry {
	entries := make([]TimelineEntry, 0, 5)

	createdAt := pkg.CreatedAt
	entries = append(entries, TimelineEntry{
		Status:      StageRegistered,
		Title:       "Colis enregistré",
		Description: fmt.Sprintf("Enregistré le %s", createdAt.Format(dateLayout)),
		Date:        &createdAt,
		Completed:   true,
	})

	if pkg.Status != domainParcel.StatusRegistered {
		entry := TimelineEntry{
			Status:      StageCollected,
			Title:       "Colis collecté",
			Description: "En attente de collecte",
		}
		if pkg.PickupAt != nil {
			entry.Description = fmt.Sprintf("Collecté le %s", pkg.PickupAt.Format(dateLayout))
			entry.Date = pkg.PickupAt
			entry.Completed = true
		}
		entries = append(entries, entry)
	}

	if cont != nil {
		entries = append(entries, TimelineEntry{
			Status:      StageInContainer,
			Title:       "En conteneur",
			Description: fmt.Sprintf("Chargé dans le conteneur %s", cont.Number),
			Location:    cont.CurrentLocation,
			Completed:   true,
		})

		// The in-transit stage reflects only the single most recent
		// publicly visible update, not the whole history.
		if latest := cont.LatestPublicUpdate(); latest != nil {
			at := latest.CreatedAt
			entries = append(entries, TimelineEntry{
				Status:      StageInTransit,
				Title:       "En transit",
				Description: latest.Description,
				Location:    latest.Location,
				Date:        &at,
				Completed:   true,
			})
		}
	}

	delivered := TimelineEntry{
		Status:      StageDelivered,
		Title:       "Livré",
		Description: "En attente de livraison",
		Completed:   pkg.Status == domainParcel.StatusDelivered,
	}
	if pkg.DeliveryAt != nil {
		delivered.Description = fmt.Sprintf("Livré le %s", pkg.DeliveryAt.Format(dateLayout))
		delivered.Date = pkg.DeliveryAt
	}
	entries = append(entries, delivered)

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Completed {
			entries[i].Current = true
			break
		}
	}

	return entries
}

// BuildPublicTimeline derives the timeline shown on the public tracking
// page, most recent event first. While the container has not arrived, a
// synthetic "Livraison prévue" entry leads the list and the most recent
// real event keeps the current marker; pending stages are omitted.
func BuildPublicTimeline(pkg *domainParcel.Package, cont *domainContainer.Container) []TimelineEntry {
	chronological := BuildTimeline(pkg, cont)
	arrived := cont != nil && cont.Status == domainContainer.StatusDelivered

	entries := make([]TimelineEntry, 0, len(chronological)+1)
	if !arrived {
		entry := TimelineEntry{
			Status:      StageUpcoming,
			Title:       "Livraison prévue",
			Description: "Date à déterminer",
		}
		if cont != nil && cont.PlannedArrivalAt != nil {
			entry.Description = fmt.Sprintf("Arrivée prévue le %s", cont.PlannedArrivalAt.Format(dateLayout))
			entry.Date = cont.PlannedArrivalAt
		}
		entries = append(entries, entry)
	}

	for i := len(chronological) - 1; i >= 0; i-- {
		e := chronological[i]
		if !e.Completed {
			continue
		}
		e.Current = false
		entries = append(entries, e)
	}

	// The first real event after the synthetic header is current.
	idx := 0
	if !arrived {
		idx = 1
	}
	if idx < len(entries) {
		entries[idx].Current = true
	}

	return entries
}
