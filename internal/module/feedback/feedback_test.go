package feedback

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/test"
	"campus-events/tools"

	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)

func tenantOf(t *testing.T, collegeID uint) scope.Tenant {
	t.Helper()
	tenant, err := scope.TenantOf(scope.StudentUser{StudentID: 1, CollegeID: collegeID})
	require.NoError(t, err)
	return tenant
}

func TestSubmit(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	amy := test.Student(t, db, c.ID, "amy")
	bob := test.Student(t, db, c.ID, "bob")
	e := test.Event(t, db, c.ID, "E", day)
	foreign := test.Event(t, db, other.ID, "F", day)
	test.Register(t, db, amy.ID, e.ID, model.RegistrationAttended)
	test.Register(t, db, bob.ID, e.ID, model.RegistrationRegistered)
	tenant := tenantOf(t, c.ID)

	fb, err := Submit(db, tenant, amy.ID, e.ID, 4, "good")
	require.NoError(t, err)
	require.Equal(t, 4, fb.Rating)

	_, err = Submit(db, tenant, amy.ID, e.ID, 5, "again")
	require.Equal(t, errAlreadySubmitted, err)

	// 只报名未到场
	_, err = Submit(db, tenant, bob.ID, e.ID, 5, "")
	require.ErrorIs(t, err, response.ErrNotAttended)

	_, err = Submit(db, tenant, amy.ID, foreign.ID, 5, "")
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestInsertFeedbackUniqueIndex(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	e := test.Event(t, db, c.ID, "E", day)
	test.Feedback(t, db, amy.ID, e.ID, 4)

	err := insertFeedback(db, &model.Feedback{StudentID: amy.ID, EventID: e.ID, Rating: 2})
	require.Equal(t, errAlreadySubmitted, err)
	require.ErrorIs(t, err, response.ErrAlreadyExists)

	var n int64
	require.NoError(t, db.Model(&model.Feedback{}).Where("student_id = ? AND event_id = ?", amy.ID, e.ID).Count(&n).Error)
	require.Equal(t, int64(1), n)
}

func TestUpdateAndDeleteOwnOnly(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	bob := test.Student(t, db, c.ID, "bob")
	e := test.Event(t, db, c.ID, "E", day)
	test.Register(t, db, amy.ID, e.ID, model.RegistrationAttended)
	fb := test.Feedback(t, db, amy.ID, e.ID, 2)

	rating := 5
	_, err := Update(db, bob.ID, fb.ID, &rating, nil)
	require.ErrorIs(t, err, response.ErrForbidden)

	got, err := Update(db, amy.ID, fb.ID, &rating, nil)
	require.NoError(t, err)
	require.Equal(t, 5, got.Rating)
	require.Equal(t, "E", got.Event.Name)

	_, err = Update(db, amy.ID, 999, &rating, nil)
	require.Equal(t, errFeedbackNotFound, err)

	require.ErrorIs(t, Delete(db, bob.ID, fb.ID), response.ErrForbidden)
	require.NoError(t, Delete(db, amy.ID, fb.ID))

	// 删除后可以重新提交
	_, err = Submit(db, tenantOf(t, c.ID), amy.ID, e.ID, 3, "")
	require.NoError(t, err)
}

func TestAverage(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	e := test.Event(t, db, c.ID, "E", day)
	empty := test.Event(t, db, c.ID, "Empty", day)
	for i, rating := range []int{5, 4, 4} {
		s := test.Student(t, db, c.ID, "s"+strconv.Itoa(i))
		test.Feedback(t, db, s.ID, e.ID, rating)
	}

	sum, err := Average(db, e.ID)
	require.NoError(t, err)
	require.Equal(t, 4.33, sum.AverageRating)
	require.Equal(t, int64(3), sum.TotalFeedbacks)
	require.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, sum.RatingDistribution)
	require.Len(t, sum.Feedbacks, 3)
	require.NotNil(t, sum.Feedbacks[0].Student)

	sum, err = Average(db, empty.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, sum.AverageRating)
	require.Equal(t, int64(0), sum.TotalFeedbacks)
	require.Empty(t, sum.Feedbacks)

	_, err = Average(db, 999)
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestListIsScoped(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	amy := test.Student(t, db, c.ID, "amy")
	zoe := test.Student(t, db, other.ID, "zoe")
	e1 := test.Event(t, db, c.ID, "E1", day)
	e2 := test.Event(t, db, c.ID, "E2", day)
	f := test.Event(t, db, other.ID, "F", day)
	test.Feedback(t, db, amy.ID, e1.ID, 5)
	test.Feedback(t, db, amy.ID, e2.ID, 3)
	test.Feedback(t, db, zoe.ID, f.ID, 1)
	tenant := tenantOf(t, c.ID)

	list, total, err := List(db, tenant, 0, tools.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	require.Equal(t, "amy", list[0].Student.Name)

	list, total, err = List(db, tenant, e2.ID, tools.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, 3, list[0].Rating)

	// 其他学院的活动 ID 过滤后为空
	_, total, err = List(db, tenant, f.ID, tools.Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestSubmitHandler(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	e := test.Event(t, db, c.ID, "E", day)
	test.Register(t, db, amy.ID, e.ID, model.RegistrationAttended)
	self := test.WithIdentity(scope.StudentUser{StudentID: amy.ID, CollegeID: c.ID})

	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, SubmitHandler, SubmitReq{EventID: e.ID, Rating: 6}, self))
	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, SubmitHandler,
		SubmitReq{EventID: e.ID, Rating: 3, Comment: strings.Repeat("x", 501)}, self))
	test.NoError(t, test.DoRequest(t, SubmitHandler, SubmitReq{EventID: e.ID, Rating: 3}, self))
	test.ErrorCode(t, response.ErrAlreadyExists, test.DoRequest(t, SubmitHandler, SubmitReq{EventID: e.ID, Rating: 3}, self))

	resp := test.DoRequest(t, AverageHandler, nil, test.WithParam("id", strconv.FormatUint(uint64(e.ID), 10)))
	test.NoError(t, resp)
	got := test.Decode[struct {
		AverageRating float64          `json:"averageRating"`
		Distribution  map[string]int64 `json:"ratingDistribution"`
	}](t, resp)
	require.Equal(t, 3.0, got.AverageRating)
	require.Equal(t, int64(1), got.Distribution["3"])
}
