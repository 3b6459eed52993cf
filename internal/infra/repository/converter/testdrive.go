package converter

import (
	"encoding/json"
	"time"

	"testdrive-hub/internal/domain/testdrive"
	"testdrive-hub/internal/infra/pgquery"
	"testdrive-hub/internal/pkg/pgconv"
	"testdrive-hub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

func RequestToInsertParams(req *testdrive.Request) (pgquery.InsertTestDriveRequestParams, error) {
	s := req.Snapshot()
	buyer, err := json.Marshal(s.BuyerData)
	if err != nil {
		return pgquery.InsertTestDriveRequestParams{}, err
	}
	date, clock := proposalColumns(s.RescheduleProposal)

	return pgquery.InsertTestDriveRequestParams{
		ID:                s.ID,
		VehicleID:         s.Vehicle.ID,
		VehicleTitle:      s.Vehicle.Title,
		VehiclePriceCents: s.Vehicle.PriceCents,
		SellerEmail:       s.Vehicle.SellerEmail,
		SellerName:        s.Vehicle.SellerName,
		BuyerEmail:        s.BuyerData.Email,
		BuyerData:         buyer,
		Status:            s.Status.String(),
		RequestedAt:       s.Timestamp,
		RespondedAt:       pgconv.TimePtrToPgtype(s.RespondedAt),
		ResponseMessage:   s.ResponseMessage,
		RescheduleDate:    date,
		RescheduleTime:    clock,
		ScheduledAt:       s.ScheduledAt,
		ClosedAt:          pgconv.TimePtrToPgtype(s.ClosedAt),
		UpdatedAt:         s.UpdatedAt,
	}, nil
}

func RequestToTransitionParams(req *testdrive.Request, expected testdrive.Status) pgquery.UpdateTestDriveRequestTransitionParams {
	s := req.Snapshot()
	date, clock := proposalColumns(s.RescheduleProposal)

	return pgquery.UpdateTestDriveRequestTransitionParams{
		ID:              s.ID,
		Status:          s.Status.String(),
		RespondedAt:     pgconv.TimePtrToPgtype(s.RespondedAt),
		ResponseMessage: s.ResponseMessage,
		RescheduleDate:  date,
		RescheduleTime:  clock,
		ScheduledAt:     s.ScheduledAt,
		ClosedAt:        pgconv.TimePtrToPgtype(s.ClosedAt),
		UpdatedAt:       s.UpdatedAt,
		ExpectedStatus:  expected.String(),
	}
}

func RequestFromRow(row pgquery.TestDriveRequest, loc *time.Location) (*testdrive.Request, error) {
	var buyer testdrive.Payload
	if err := json.Unmarshal(row.BuyerData, &buyer); err != nil {
		return nil, err
	}
	status, err := testdrive.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	s := testdrive.Snapshot{
		ID: row.ID,
		Vehicle: testdrive.VehicleData{
			ID:          row.VehicleID,
			Title:       row.VehicleTitle,
			PriceCents:  row.VehiclePriceCents,
			SellerEmail: row.SellerEmail,
			SellerName:  row.SellerName,
		},
		BuyerData:       buyer,
		Status:          status,
		Timestamp:       row.RequestedAt.In(loc),
		RespondedAt:     inLocation(pgconv.TimePtrFromPgtype(row.RespondedAt), loc),
		ResponseMessage: row.ResponseMessage,
		ScheduledAt:     row.ScheduledAt.In(loc),
		ClosedAt:        inLocation(pgconv.TimePtrFromPgtype(row.ClosedAt), loc),
		UpdatedAt:       row.UpdatedAt.In(loc),
	}
	if row.RescheduleDate.Valid {
		s.RescheduleProposal = &testdrive.RescheduleProposal{
			Date: row.RescheduleDate.String,
			Time: pgconv.StringFromPgtype(row.RescheduleTime),
		}
	}
	return testdrive.Reconstruct(s), nil
}

func RequestsFromRows(rows []pgquery.TestDriveRequest, loc *time.Location) ([]*testdrive.Request, error) {
	out := make([]*testdrive.Request, 0, len(rows))
	for _, row := range rows {
		req, err := RequestFromRow(row, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}

func HistoryToParams(e shared.HistoryEntry) pgquery.InsertTestDriveRequestEventParams {
	return pgquery.InsertTestDriveRequestEventParams{
		RequestID:  e.RequestID,
		Action:     e.Action,
		FromStatus: e.From.String(),
		ToStatus:   e.To.String(),
		Actor:      e.Actor,
		Message:    e.Message,
		OccurredAt: e.At,
	}
}

func HistoryFromRows(rows []pgquery.TestDriveRequestEvent, loc *time.Location) []shared.HistoryEntry {
	out := make([]shared.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, shared.HistoryEntry{
			RequestID: r.RequestID,
			Action:    r.Action,
			From:      testdrive.Status(r.FromStatus),
			To:        testdrive.Status(r.ToStatus),
			Actor:     r.Actor,
			Message:   r.Message,
			At:        r.OccurredAt.In(loc),
		})
	}
	return out
}

func VehicleFromRow(row pgquery.Vehicle) testdrive.VehicleData {
	return testdrive.VehicleData{
		ID:          row.ID,
		Title:       row.Title,
		PriceCents:  row.PriceCents,
		SellerEmail: row.SellerEmail,
		SellerName:  row.SellerName,
	}
}

func VehicleToUpsertParams(v testdrive.VehicleData) pgquery.UpsertVehicleParams {
	return pgquery.UpsertVehicleParams{
		ID:          v.ID,
		Title:       v.Title,
		PriceCents:  v.PriceCents,
		SellerEmail: v.SellerEmail,
		SellerName:  v.SellerName,
	}
}

func proposalColumns(p *testdrive.RescheduleProposal) (pgtype.Text, pgtype.Text) {
	if p == nil {
		return pgtype.Text{}, pgtype.Text{}
	}
	return pgconv.StringToPgtype(p.Date), pgconv.StringToPgtype(p.Time)
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}
