package surety

import (
	"context"

	airlinemodels "flightsurety/internal/airline/models"
	"flightsurety/internal/events"
	flightmodels "flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/internal/storage"
	"flightsurety/internal/surety/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/requestcontext"
)

// AdmitAirline admits candidate, or records the caller's vote for it.
func (a *App) AdmitAirline(ctx context.Context, candidate domain.Address) (*airlinemodels.AdmissionResult, error) {
	var res *airlinemodels.AdmissionResult
	err := a.run(ctx, "admit_airline", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		res, err = a.airlines.Admit(ctx, tx, candidate, caller)
		return err
	})
	return res, err
}

// FundAirline funds the calling airline with value. The fee goes to the
// escrow pool and any excess is refunded.
func (a *App) FundAirline(ctx context.Context, value domain.Amount) (*airlinemodels.FundingResult, error) {
	var res *airlinemodels.FundingResult
	err := a.run(ctx, "fund_airline", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		if res, err = a.airlines.Fund(ctx, tx, caller, value); err != nil {
			return err
		}
		if err := a.insurance.Deposit(ctx, tx, res.Fee); err != nil {
			return err
		}
		return a.refund(ctx, caller, res.Refund)
	})
	return res, err
}

// RegisterFlight registers a flight operated by the calling airline.
func (a *App) RegisterFlight(ctx context.Context, number string, timestamp int64, departure, arrival string) (*flightmodels.Flight, error) {
	var flight *flightmodels.Flight
	err := a.run(ctx, "register_flight", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		flight, err = a.flights.Register(ctx, tx, caller, number, timestamp, departure, arrival)
		return err
	})
	return flight, err
}

// PurchaseInsurance insures the caller on the flight for value.
func (a *App) PurchaseInsurance(ctx context.Context, key domain.FlightKey, value domain.Amount) (*insurancemodels.Claim, error) {
	var claim *insurancemodels.Claim
	err := a.run(ctx, "purchase_insurance", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		claim, err = a.insurance.Purchase(ctx, tx, key, caller, value)
		return err
	})
	return claim, err
}

// RequestFlightStatus opens a status request that reporters holding the
// returned index may answer.
func (a *App) RequestFlightStatus(ctx context.Context, airline domain.Address, flight string, timestamp int64) (*oraclemodels.StatusRequest, error) {
	var req *oraclemodels.StatusRequest
	err := a.run(ctx, "request_flight_status", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		req, err = a.oracles.Request(ctx, tx, caller, airline, flight, timestamp)
		return err
	})
	return req, err
}

// RegisterReporter registers the caller as a status reporter. The fee goes
// to the escrow pool and any excess is refunded.
func (a *App) RegisterReporter(ctx context.Context, value domain.Amount) (*oraclemodels.Registration, error) {
	var reg *oraclemodels.Registration
	err := a.run(ctx, "register_reporter", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		if reg, err = a.oracles.Register(ctx, tx, caller, value); err != nil {
			return err
		}
		if err := a.insurance.Deposit(ctx, tx, reg.Fee); err != nil {
			return err
		}
		return a.refund(ctx, caller, reg.Refund)
	})
	return reg, err
}

// GetMyIndices returns the calling reporter's indices.
func (a *App) GetMyIndices(ctx context.Context) ([oraclemodels.IndexCount]domain.Index, error) {
	var indices [oraclemodels.IndexCount]domain.Index
	err := a.run(ctx, "get_my_indices", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		indices, err = a.oracles.Indices(ctx, tx, caller)
		return err
	})
	return indices, err
}

// SubmitStatusReport records the calling reporter's assertion. A report that
// cannot count comes back as a rejected outcome, not an error.
func (a *App) SubmitStatusReport(ctx context.Context, report oraclemodels.Report) (oraclemodels.ReportOutcome, error) {
	var outcome oraclemodels.ReportOutcome
	err := a.run(ctx, "submit_status_report", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		outcome, err = a.oracles.Submit(ctx, tx, caller, report)
		return err
	})
	return outcome, err
}

// Withdraw pays the caller's credited balance.
func (a *App) Withdraw(ctx context.Context) (domain.Amount, error) {
	var paid domain.Amount
	err := a.run(ctx, "withdraw", mutate, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		paid, err = a.insurance.Withdraw(ctx, tx, caller)
		return err
	})
	return paid, err
}

// SetOperational flips the kill switch. Only the owner may call it; setting
// the current value again is a no-op.
func (a *App) SetOperational(ctx context.Context, on bool) error {
	return a.run(ctx, "set_operational", control, func(ctx context.Context, tx storage.Tx, sys *models.System) error {
		caller, err := callerOf(ctx)
		if err != nil {
			return err
		}
		if err := sys.RequireOwner(caller); err != nil {
			return err
		}
		if !sys.ApplyOperational(on, requestcontext.Now(ctx)) {
			return nil
		}
		if err := tx.SaveSystem(ctx, sys); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save system state")
		}
		if a.metrics != nil {
			a.metrics.SetOperational(on)
		}
		a.logger.InfoContext(ctx, string(events.OperationalChanged),
			"operational", on,
			"owner", caller.String(),
			"event", string(events.OperationalChanged),
			"log_type", "audit",
		)
		state := "off"
		if on {
			state = "on"
		}
		events.Emit(ctx, events.OperationalChanged, caller.String(), "system", map[string]string{"operational": state})
		return nil
	})
}

// IsOperational reports the kill switch state.
func (a *App) IsOperational(ctx context.Context) (bool, error) {
	var on bool
	err := a.run(ctx, "is_operational", read, func(_ context.Context, _ storage.Tx, sys *models.System) error {
		on = sys.Operational
		return nil
	})
	return on, err
}

func (a *App) Airline(ctx context.Context, addr domain.Address) (*airlinemodels.Airline, error) {
	var airline *airlinemodels.Airline
	err := a.run(ctx, "get_airline", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		airline, err = a.airlines.Get(ctx, tx, addr)
		return err
	})
	return airline, err
}

func (a *App) AirlineCounts(ctx context.Context) (airlinemodels.Counts, error) {
	var counts airlinemodels.Counts
	err := a.run(ctx, "airline_counts", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		counts, err = a.airlines.Counts(ctx, tx)
		return err
	})
	return counts, err
}

func (a *App) Flight(ctx context.Context, key domain.FlightKey) (*flightmodels.Flight, error) {
	var flight *flightmodels.Flight
	err := a.run(ctx, "get_flight", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		flight, err = a.flights.Get(ctx, tx, key)
		return err
	})
	return flight, err
}

func (a *App) Claims(ctx context.Context, key domain.FlightKey) ([]*insurancemodels.Claim, error) {
	var claims []*insurancemodels.Claim
	err := a.run(ctx, "list_claims", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		claims, err = a.insurance.Claims(ctx, tx, key)
		return err
	})
	return claims, err
}

func (a *App) Balance(ctx context.Context, who domain.Address) (domain.Amount, error) {
	var balance domain.Amount
	err := a.run(ctx, "get_balance", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		balance, err = a.insurance.Balance(ctx, tx, who)
		return err
	})
	return balance, err
}

func (a *App) Pool(ctx context.Context) (domain.Amount, error) {
	var pool domain.Amount
	err := a.run(ctx, "get_pool", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		pool, err = a.insurance.Pool(ctx, tx)
		return err
	})
	return pool, err
}

func (a *App) StatusRequest(ctx context.Context, key domain.RequestKey) (*oraclemodels.Request, error) {
	var req *oraclemodels.Request
	err := a.run(ctx, "get_status_request", read, func(ctx context.Context, tx storage.Tx, _ *models.System) error {
		var err error
		req, err = a.oracles.GetRequest(ctx, tx, key)
		return err
	})
	return req, err
}
