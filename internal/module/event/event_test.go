package event

import (
	"strconv"
	"testing"
	"time"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/test"

	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

type eventPage struct {
	Events []model.Event `json:"events"`
	Total  int64         `json:"total"`
}

func idOf(e *model.Event) string {
	return strconv.FormatUint(uint64(e.ID), 10)
}

func TestCreate(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	req := CreateReq{
		Name:        "Robotics Expo",
		Type:        model.EventTypeTechnical,
		Host:        "Robotics Club",
		Description: "Annual robotics exhibition",
		StartTime:   day,
		EndTime:     day.Add(3 * time.Hour),
		Location:    "Hall A",
	}
	resp := test.DoRequest(t, Create, req, admin)
	test.NoError(t, resp)
	got := test.Decode[struct {
		Event model.Event `json:"event"`
	}](t, resp)
	require.Equal(t, c.ID, got.Event.CollegeID)
	require.Equal(t, model.EventStatusUpcoming, got.Event.Status)
	require.Nil(t, got.Event.MaxParticipants)

	bad := req
	bad.EndTime = day.Add(-time.Hour)
	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, Create, bad, admin))

	bad = req
	bad.Type = "party"
	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, Create, bad, admin))

	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, Create, req,
		test.WithIdentity(scope.StudentUser{StudentID: 1, CollegeID: c.ID})))
}

func TestListFiltersAndOrder(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	test.Event(t, db, c.ID, "early", day)
	test.Event(t, db, c.ID, "late", day.Add(48*time.Hour), func(e *model.Event) { e.Type = model.EventTypeSports })
	test.Event(t, db, c.ID, "over", day.Add(24*time.Hour), func(e *model.Event) { e.Status = model.EventStatusCompleted })
	test.Event(t, db, other.ID, "foreign", day)
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	got := test.Decode[eventPage](t, test.DoRequest(t, List, nil, admin))
	require.Equal(t, int64(3), got.Total)
	require.Equal(t, "late", got.Events[0].Name)
	require.Equal(t, "over", got.Events[1].Name)
	require.Equal(t, "early", got.Events[2].Name)

	got = test.Decode[eventPage](t, test.DoRequest(t, List, nil, admin, test.WithQuery("type=sports")))
	require.Equal(t, int64(1), got.Total)
	require.Equal(t, "late", got.Events[0].Name)

	got = test.Decode[eventPage](t, test.DoRequest(t, List, nil, admin, test.WithQuery("status=completed")))
	require.Equal(t, int64(1), got.Total)

	got = test.Decode[eventPage](t, test.DoRequest(t, List, nil, admin, test.WithQuery("page=2&page_size=2")))
	require.Equal(t, int64(3), got.Total)
	require.Len(t, got.Events, 1)

	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, List, nil, admin, test.WithQuery("status=lost")))
}

func TestPublicListAndGet(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	test.Event(t, db, c.ID, "second", day.Add(time.Hour))
	first := test.Event(t, db, other.ID, "first", day, func(e *model.Event) { e.Status = model.EventStatusOngoing })
	test.Event(t, db, c.ID, "cancelled", day, func(e *model.Event) { e.Status = model.EventStatusCancelled })

	got := test.Decode[eventPage](t, test.DoRequest(t, PublicList, nil))
	require.Equal(t, int64(2), got.Total)
	require.Equal(t, "first", got.Events[0].Name)
	require.Equal(t, "O", got.Events[0].College.Name)
	require.Equal(t, "second", got.Events[1].Name)

	got = test.Decode[eventPage](t, test.DoRequest(t, PublicList, nil,
		test.WithQuery("college_id="+strconv.FormatUint(uint64(c.ID), 10))))
	require.Equal(t, int64(1), got.Total)
	require.Equal(t, "second", got.Events[0].Name)

	resp := test.DoRequest(t, Get, nil, test.WithParam("id", idOf(first)))
	test.NoError(t, resp)
	detail := test.Decode[struct {
		Event model.Event `json:"event"`
	}](t, resp)
	require.Equal(t, "first", detail.Event.Name)
	require.Equal(t, "O", detail.Event.College.Name)

	test.ErrorCode(t, response.ErrNotFound, test.DoRequest(t, Get, nil, test.WithParam("id", "999")))
	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, Get, nil, test.WithParam("id", "abc")))
}

func TestUpdate(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	e := test.Event(t, db, c.ID, "Old name", day)
	foreign := test.Event(t, db, other.ID, "foreign", day)
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	name := "New name"
	limit := 30
	test.NoError(t, test.DoRequest(t, Update, UpdateReq{Name: &name, MaxParticipants: &limit},
		admin, test.WithParam("id", idOf(e))))

	var got model.Event
	require.NoError(t, db.First(&got, e.ID).Error)
	require.Equal(t, "New name", got.Name)
	require.Equal(t, 30, *got.MaxParticipants)
	require.Equal(t, "hall", got.Location)

	// 结束时间早于开始时间
	end := day.Add(-time.Minute)
	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, Update, UpdateReq{EndTime: &end},
		admin, test.WithParam("id", idOf(e))))

	// 跨学院按不存在处理
	test.ErrorCode(t, response.ErrNotFound, test.DoRequest(t, Update, UpdateReq{Name: &name},
		admin, test.WithParam("id", idOf(foreign))))
}

func TestCancel(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	e := test.Event(t, db, c.ID, "E", day)
	foreign := test.Event(t, db, other.ID, "F", day)
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	test.NoError(t, test.DoRequest(t, Cancel, nil, admin, test.WithParam("id", idOf(e))))
	var got model.Event
	require.NoError(t, db.First(&got, e.ID).Error)
	require.Equal(t, model.EventStatusCancelled, got.Status)

	test.ErrorCode(t, response.ErrNotFound, test.DoRequest(t, Cancel, nil, admin, test.WithParam("id", idOf(foreign))))
	var untouched model.Event
	require.NoError(t, db.First(&untouched, foreign.ID).Error)
	require.Equal(t, model.EventStatusUpcoming, untouched.Status)
}

func TestPosterContentType(t *testing.T) {
	ct, ok := posterContentType("poster.PNG", "image/png")
	require.True(t, ok)
	require.Equal(t, "image/png", ct)

	_, ok = posterContentType("poster.pdf", "application/pdf")
	require.False(t, ok)
	_, ok = posterContentType("poster.jpg", "text/html")
	require.False(t, ok)
}
