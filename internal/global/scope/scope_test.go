package scope_test

import (
	"testing"
	"time"

	"campus-events/internal/global/jwt"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/test"

	"github.com/stretchr/testify/require"
)

func TestFromClaims(t *testing.T) {
	id, ok := scope.FromClaims(&jwt.Claims{Payload: jwt.Payload{Role: model.RoleCollegeAdmin, AdminID: 1, CollegeID: 2}})
	require.True(t, ok)
	require.Equal(t, scope.CollegeAdmin{AdminID: 1, CollegeID: 2}, id)

	id, ok = scope.FromClaims(&jwt.Claims{Payload: jwt.Payload{Role: model.RoleSuperAdmin, AdminID: 9}})
	require.True(t, ok)
	require.Equal(t, scope.SuperAdmin{AdminID: 9}, id)

	id, ok = scope.FromClaims(&jwt.Claims{Payload: jwt.Payload{Role: model.RoleStudent, StudentID: 4, CollegeID: 2}})
	require.True(t, ok)
	require.Equal(t, scope.StudentUser{StudentID: 4, CollegeID: 2}, id)

	_, ok = scope.FromClaims(&jwt.Claims{Payload: jwt.Payload{Role: model.RoleCollegeAdmin, AdminID: 1}})
	require.False(t, ok)
	_, ok = scope.FromClaims(&jwt.Claims{Payload: jwt.Payload{Role: "janitor", AdminID: 1}})
	require.False(t, ok)
	_, ok = scope.FromClaims(nil)
	require.False(t, ok)
}

func TestAdminTenant(t *testing.T) {
	tenant, err := scope.AdminTenant(scope.CollegeAdmin{AdminID: 1, CollegeID: 5})
	require.NoError(t, err)
	require.Equal(t, uint(5), tenant.CollegeID())

	_, err = scope.AdminTenant(scope.SuperAdmin{AdminID: 1})
	require.ErrorIs(t, err, response.ErrForbidden)

	_, err = scope.AdminTenant(scope.StudentUser{StudentID: 1, CollegeID: 5})
	require.ErrorIs(t, err, response.ErrForbidden)

	_, err = scope.AdminTenant(nil)
	require.ErrorIs(t, err, response.ErrUnauthorized)

	tenant, err = scope.TenantOf(scope.StudentUser{StudentID: 1, CollegeID: 5})
	require.NoError(t, err)
	require.Equal(t, uint(5), tenant.CollegeID())
}

func TestTenantLookupsAreIsolated(t *testing.T) {
	db := test.NewDB(t)
	a := model.College{Name: "A", Address: "a"}
	b := model.College{Name: "B", Address: "b"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	ev := model.Event{CollegeID: b.ID, Name: "B fest", Type: model.EventTypeCultural, Host: "h", Description: "d",
		StartTime: start, EndTime: start.Add(time.Hour), Location: "hall", Status: model.EventStatusUpcoming}
	require.NoError(t, db.Create(&ev).Error)
	st := model.Student{Name: "Bo", Email: "bo@b.edu", Password: "x", StudentNumber: "B-1", CollegeID: b.ID}
	require.NoError(t, db.Create(&st).Error)

	tenantA, err := scope.AdminTenant(scope.CollegeAdmin{AdminID: 1, CollegeID: a.ID})
	require.NoError(t, err)
	tenantB, err := scope.AdminTenant(scope.CollegeAdmin{AdminID: 2, CollegeID: b.ID})
	require.NoError(t, err)

	_, err = tenantA.Event(db, ev.ID)
	require.ErrorIs(t, err, response.ErrNotFound)
	_, err = tenantA.Student(db, st.ID)
	require.ErrorIs(t, err, response.ErrNotFound)
	_, err = tenantB.Event(db, 9999)
	require.ErrorIs(t, err, response.ErrNotFound)

	got, err := tenantB.Event(db, ev.ID)
	require.NoError(t, err)
	require.Equal(t, "B fest", got.Name)

	var n int64
	require.NoError(t, tenantA.Events(db).Count(&n).Error)
	require.Zero(t, n)
}
