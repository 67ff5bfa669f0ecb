package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrAddTrackingUpdateCommandIsNotConstructed = errors.New(
	"AddTrackingUpdateCommand must be created via NewAddTrackingUpdateCommand constructor",
)

// AddTrackingUpdateCommand records a staff scan: a status plus a free-text location
// and description, optionally backdated.
type AddTrackingUpdateCommand struct {
	parcelID    kernel.UUID
	status      parcel.Status
	location    string
	description string
	timestamp   time.Time
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewAddTrackingUpdateCommand validates the update. A zero timestamp means "now".
func NewAddTrackingUpdateCommand(
	parcelID kernel.UUID,
	status, location, description string,
	timestamp time.Time,
	actor kernel.Actor,
) (AddTrackingUpdateCommand, error) {
	st, statusErr := parcel.ParseStatus(status)

	location = strings.TrimSpace(location)
	description = strings.TrimSpace(description)
	var locationErr, descriptionErr error
	if location == "" {
		locationErr = errs.NewValueIsRequiredError("location")
	}
	if description == "" {
		descriptionErr = errs.NewValueIsRequiredError("description")
	}

	if err := errors.Join(parcelID.Validate(), statusErr, locationErr, descriptionErr, actor.Validate()); err != nil {
		return AddTrackingUpdateCommand{}, err
	}

	return AddTrackingUpdateCommand{
		parcelID:    parcelID,
		status:      st,
		location:    location,
		description: description,
		timestamp:   timestamp,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddTrackingUpdateCommand) Validate() error {
	return c.guard.Validate(ErrAddTrackingUpdateCommandIsNotConstructed)
}

func (c AddTrackingUpdateCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c AddTrackingUpdateCommand) Status() parcel.Status { return c.status }
func (c AddTrackingUpdateCommand) Location() string      { return c.location }
func (c AddTrackingUpdateCommand) Description() string   { return c.description }
func (c AddTrackingUpdateCommand) Timestamp() time.Time  { return c.timestamp }
func (c AddTrackingUpdateCommand) Actor() kernel.Actor   { return c.actor }

// checkTimestamp keeps the newest ledger entry in agreement with the parcel status:
// an entry may not be placed before the parcel's previous change.
func checkTimestamp(at, lastChange time.Time) error {
	if at.Before(lastChange) {
		return errs.NewValueIsInvalidErrorWithCause(
			"timestamp",
			fmt.Errorf("%s is before the last recorded change at %s", at.Format(time.RFC3339), lastChange.Format(time.RFC3339)),
		)
	}
	return nil
}
