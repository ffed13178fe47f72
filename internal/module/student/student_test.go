package student

import (
	"strconv"
	"testing"
	"time"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/test"
	"campus-events/tools"

	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func studentTenant(t *testing.T, s *model.Student) scope.Tenant {
	t.Helper()
	tenant, err := scope.TenantOf(scope.StudentUser{StudentID: s.ID, CollegeID: s.CollegeID})
	require.NoError(t, err)
	return tenant
}

func TestRegister(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	amy := test.Student(t, db, c.ID, "amy")
	bob := test.Student(t, db, c.ID, "bob")
	one := 1
	small := test.Event(t, db, c.ID, "small", day, func(e *model.Event) { e.MaxParticipants = &one })
	done := test.Event(t, db, c.ID, "done", day, func(e *model.Event) { e.Status = model.EventStatusCompleted })
	foreign := test.Event(t, db, other.ID, "foreign", day)

	reg, err := Register(db, studentTenant(t, amy), amy.ID, small.ID, day)
	require.NoError(t, err)
	require.Equal(t, model.RegistrationRegistered, reg.Status)

	_, err = Register(db, studentTenant(t, amy), amy.ID, small.ID, day)
	require.Equal(t, errAlreadyRegistered, err)

	_, err = Register(db, studentTenant(t, bob), bob.ID, small.ID, day)
	require.Equal(t, errFull, err)

	_, err = Register(db, studentTenant(t, bob), bob.ID, done.ID, day)
	require.Equal(t, errNotOpen, err)

	// 其他学院的活动对学生不可见
	_, err = Register(db, studentTenant(t, bob), bob.ID, foreign.ID, day)
	require.ErrorIs(t, err, response.ErrNotFound)

	_, err = Register(db, studentTenant(t, bob), bob.ID, 999, day)
	require.ErrorIs(t, err, response.ErrNotFound)
}

func TestInsertRegistrationUniqueIndex(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	e := test.Event(t, db, c.ID, "E", day)
	test.Register(t, db, amy.ID, e.ID, model.RegistrationRegistered)

	// 另一请求已经写入同一对，计数检查之后的插入由唯一索引拒绝
	err := insertRegistration(db, &model.Registration{
		StudentID:    amy.ID,
		EventID:      e.ID,
		Status:       model.RegistrationRegistered,
		RegisteredAt: day,
	})
	require.Equal(t, errAlreadyRegistered, err)
	require.ErrorIs(t, err, response.ErrAlreadyExists)

	var n int64
	require.NoError(t, db.Model(&model.Registration{}).Where("student_id = ? AND event_id = ?", amy.ID, e.ID).Count(&n).Error)
	require.Equal(t, int64(1), n)
}

func TestUnregisterAllowsRegisterAgain(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	e := test.Event(t, db, c.ID, "E", day)

	_, err := Register(db, studentTenant(t, amy), amy.ID, e.ID, day)
	require.NoError(t, err)
	require.NoError(t, Unregister(db, amy.ID, e.ID))
	require.ErrorIs(t, Unregister(db, amy.ID, e.ID), response.ErrNotFound)

	_, err = Register(db, studentTenant(t, amy), amy.ID, e.ID, day)
	require.NoError(t, err)
}

func TestListOwn(t *testing.T) {
	db := test.NewDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	e1 := test.Event(t, db, c.ID, "E1", day)
	e2 := test.Event(t, db, c.ID, "E2", day)

	_, err := Register(db, studentTenant(t, amy), amy.ID, e1.ID, day)
	require.NoError(t, err)
	_, err = Register(db, studentTenant(t, amy), amy.ID, e2.ID, day.Add(time.Hour))
	require.NoError(t, err)
	test.Feedback(t, db, amy.ID, e1.ID, 5)

	regs, err := ListOwn(db, amy.ID)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	require.Equal(t, e2.ID, regs[0].EventID)
	require.False(t, regs[0].HasFeedback)
	require.Equal(t, e1.ID, regs[1].EventID)
	require.True(t, regs[1].HasFeedback)
	require.NotNil(t, regs[1].Event)
	require.Equal(t, "C", regs[1].Event.College.Name)
}

func TestCreateAndList(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	test.Student(t, db, other.ID, "zoe")
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	req := CreateReq{Name: "Amy Lee", Email: "amy@c.edu", Password: "secret1", StudentNumber: "S001"}
	test.NoError(t, test.DoRequest(t, Create, req, admin))
	test.ErrorCode(t, response.ErrAlreadyExists, test.DoRequest(t, Create, req, admin))

	req = CreateReq{Name: "Bob Ray", Email: "bob@c.edu", Password: "secret1", StudentNumber: "S002"}
	test.NoError(t, test.DoRequest(t, Create, req, admin))
	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, Create, CreateReq{Name: "x"}, admin))

	resp := test.DoRequest(t, List, nil, admin)
	test.NoError(t, resp)
	got := test.Decode[struct {
		Students []model.Student `json:"students"`
		Total    int64           `json:"total"`
	}](t, resp)
	require.Equal(t, int64(2), got.Total)
	require.Equal(t, "Amy Lee", got.Students[0].Name)

	resp = test.DoRequest(t, List, nil, admin, test.WithQuery("search=S002"))
	got = test.Decode[struct {
		Students []model.Student `json:"students"`
		Total    int64           `json:"total"`
	}](t, resp)
	require.Equal(t, int64(1), got.Total)
	require.Equal(t, "Bob Ray", got.Students[0].Name)

	// 超级管理员没有学院
	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, List, nil, test.WithIdentity(scope.SuperAdmin{AdminID: 1})))
}

func TestAdminStudentEvents(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	amy := test.Student(t, db, c.ID, "amy")
	zoe := test.Student(t, db, other.ID, "zoe")
	e := test.Event(t, db, c.ID, "E", day)
	test.Register(t, db, amy.ID, e.ID, model.RegistrationAttended)
	admin := test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})

	resp := test.DoRequest(t, Events, nil, admin, test.WithParam("id", strconv.FormatUint(uint64(amy.ID), 10)))
	test.NoError(t, resp)
	got := test.Decode[struct {
		Registrations []model.Registration `json:"registrations"`
	}](t, resp)
	require.Len(t, got.Registrations, 1)
	require.Equal(t, "E", got.Registrations[0].Event.Name)

	test.ErrorCode(t, response.ErrNotFound, test.DoRequest(t, Events, nil, admin,
		test.WithParam("id", strconv.FormatUint(uint64(zoe.ID), 10))))
}

func TestProfileAndPassword(t *testing.T) {
	db := test.UseDB(t)
	c := test.College(t, db, "C")
	amy := test.Student(t, db, c.ID, "amy")
	bob := test.Student(t, db, c.ID, "bob")
	require.NoError(t, db.Model(amy).Update("password", tools.PasswordEncrypt("secret1")).Error)
	self := test.WithIdentity(scope.StudentUser{StudentID: amy.ID, CollegeID: c.ID})

	test.ErrorCode(t, response.ErrAlreadyExists, test.DoRequest(t, UpdateProfile, ProfileReq{Email: bob.Email}, self))
	test.NoError(t, test.DoRequest(t, UpdateProfile, ProfileReq{Name: "Amy Lee"}, self))

	var got model.Student
	require.NoError(t, db.First(&got, amy.ID).Error)
	require.Equal(t, "Amy Lee", got.Name)
	require.Equal(t, amy.Email, got.Email)

	test.ErrorCode(t, response.ErrInvalidRequest, test.DoRequest(t, ChangePassword,
		ChangePasswordReq{CurrentPassword: "wrong12", NewPassword: "secret2"}, self))
	test.NoError(t, test.DoRequest(t, ChangePassword,
		ChangePasswordReq{CurrentPassword: "secret1", NewPassword: "secret2"}, self))
	require.NoError(t, db.First(&got, amy.ID).Error)
	require.True(t, tools.PasswordCompare("secret2", got.Password))

	// 管理员身份不能调用学生接口
	test.ErrorEqual(t, response.ErrForbidden, test.DoRequest(t, UpdateProfile, ProfileReq{Name: "x y"},
		test.WithIdentity(scope.CollegeAdmin{AdminID: 1, CollegeID: c.ID})))
}
