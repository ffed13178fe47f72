package report

import (
	"testing"
	"time"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/test"

	"github.com/stretchr/testify/require"
)

func TestHandlersRejectBadQuery(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	cases := []struct {
		name    string
		handler func(*testing.T) response.ResponseBody
	}{
		{"sort_by", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, StudentParticipationHandler, nil, admin, test.WithQuery("sort_by=bogus"))
		}},
		{"criteria", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, TopStudentsHandler, nil, admin, test.WithQuery("criteria=bogus"))
		}},
		{"limit", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, PopularEventsHandler, nil, admin, test.WithQuery("limit=0"))
		}},
		{"type", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, PopularEventsHandler, nil, admin, test.WithQuery("type=party"))
		}},
		{"date", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, PopularEventsHandler, nil, admin, test.WithQuery("date_from=yesterday"))
		}},
		{"months", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, AttendanceTrendsHandler, nil, admin, test.WithQuery("months=61"))
		}},
		{"as_of", func(t *testing.T) response.ResponseBody {
			return test.DoRequest(t, DashboardStatsHandler, nil, admin, test.WithQuery("as_of=soon"))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			test.ErrorCode(t, response.ErrInvalidRequest, tc.handler(t))
		})
	}
}

func TestHandlersDefaults(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	resp := test.DoRequest(t, TopStudentsHandler, nil, admin)
	test.NoError(t, resp)
	got := test.Decode[TopStudentsResult](t, resp)
	require.Equal(t, SortAttended, got.Criteria)

	resp = test.DoRequest(t, AttendanceTrendsHandler, nil, admin, test.WithQuery("as_of=2025-04-15T12:00:00Z"))
	test.NoError(t, resp)
	trends := test.Decode[struct {
		Trends []MonthTrend `json:"trends"`
	}](t, resp)
	require.Len(t, trends.Trends, 6)
	require.Equal(t, "2025-04", trends.Trends[5].Key)

	// 超级管理员没有学院范围
	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, DashboardStatsHandler, nil,
		test.WithIdentity(scope.SuperAdmin{AdminID: 1})))
}

func TestParseBound(t *testing.T) {
	to, err := parseBound("2025-03-31", true)
	require.NoError(t, err)
	require.True(t, to.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)))

	from, err := parseBound("2025-03-01T00:00:00Z", false)
	require.NoError(t, err)
	require.True(t, from.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	none, err := parseBound("", false)
	require.NoError(t, err)
	require.Nil(t, none)
}

// date_to 为 RFC3339 时间点时不含该时刻；只有日期时包含当天全部活动
func TestPopularEventsDateTo(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	test.Event(t, db, c.ID, "before", at.Add(-time.Second))
	test.Event(t, db, c.ID, "at", at)
	test.Event(t, db, c.ID, "later", at.Add(48*time.Hour))
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	names := func(query string) []string {
		resp := test.DoRequest(t, PopularEventsHandler, nil, admin, test.WithQuery(query))
		test.NoError(t, resp)
		var out []string
		for _, e := range test.Decode[PopularEventsResult](t, resp).Events {
			out = append(out, e.Name)
		}
		return out
	}

	require.ElementsMatch(t, []string{"before"}, names("date_to=2025-03-10T10:00:00Z"))
	require.ElementsMatch(t, []string{"before", "at"}, names("date_to=2025-03-10T10:00:01Z"))
	require.ElementsMatch(t, []string{"before", "at"}, names("date_to=2025-03-10"))
	require.ElementsMatch(t, []string{"at", "later"}, names("date_from=2025-03-10T10:00:00Z"))
}
