// Package parcel contains the Parcel aggregate and its lifecycle state machine.
//
// A Parcel is created in PENDING status by NewParcel and afterwards only changes
// status through ChangeStatus, which consults a TransitionRule (StrictTransitions by
// default, AnyTransition for the permissive mode) and raises a StatusChanged event.
// Callers pair every status change with a tracking ledger entry in the same unit of work.
package parcel
