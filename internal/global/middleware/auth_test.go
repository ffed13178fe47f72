package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-events/config"
	"campus-events/internal/global/jwt"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"
	"campus-events/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRouter(roles ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", Auth(roles...), func(c *gin.Context) {
		id, ok := scope.Get(c)
		if !ok {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		response.Success(c, gin.H{"identity": id})
	})
	return r
}

func call(t *testing.T, r *gin.Engine, header string) response.ResponseBody {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	var body response.ResponseBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, int(body.Code), w.Code)
	return body
}

func admin(t *testing.T, db *gorm.DB, role model.Role, collegeID *uint, email string) *model.Admin {
	t.Helper()
	a := &model.Admin{Email: email, Password: "x", Role: role, CollegeID: collegeID}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestAuth(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.AccessSecret = "mw-secret"
	config.Set(cfg)

	db := test.UseDB(t)
	c := test.College(t, db, "C")
	a := admin(t, db, model.RoleCollegeAdmin, &c.ID, "a@c.edu")
	s := test.Student(t, db, c.ID, "amy")

	adminToken := jwt.CreateToken(jwt.Payload{Role: model.RoleCollegeAdmin, AdminID: a.ID, CollegeID: c.ID})
	studentToken := jwt.CreateToken(jwt.Payload{Role: model.RoleStudent, StudentID: s.ID, CollegeID: c.ID})

	r := newRouter(model.RoleCollegeAdmin)
	require.Equal(t, response.ErrUnauthorized.Code, call(t, r, "").Code)
	require.Equal(t, response.ErrTokenInvalid.Code, call(t, r, "Token abc").Code)
	require.Equal(t, response.ErrTokenInvalid.Code, call(t, r, "Bearer abc").Code)
	require.Equal(t, response.ErrForbidden.Code, call(t, r, "Bearer "+studentToken).Code)
	require.Equal(t, int32(200), call(t, r, "Bearer "+adminToken).Code)

	open := newRouter()
	require.Equal(t, int32(200), call(t, open, "Bearer "+studentToken).Code)
}

func TestAuthRejectsDeletedAccount(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.AccessSecret = "mw-secret"
	config.Set(cfg)

	db := test.UseDB(t)
	c := test.College(t, db, "C")
	other := test.College(t, db, "O")
	a := admin(t, db, model.RoleCollegeAdmin, &c.ID, "a@c.edu")
	b := admin(t, db, model.RoleCollegeAdmin, &other.ID, "b@o.edu")
	root := admin(t, db, model.RoleSuperAdmin, nil, "root@campus.edu")
	s := test.Student(t, db, other.ID, "zoe")
	r := newRouter()

	// token 中的学院与账号不符
	forged := jwt.CreateToken(jwt.Payload{Role: model.RoleCollegeAdmin, AdminID: a.ID, CollegeID: other.ID})
	require.Equal(t, response.ErrUnauthorized.Code, call(t, r, "Bearer "+forged).Code)

	// 学院管理员 token 不能冒充超级管理员
	fake := jwt.CreateToken(jwt.Payload{Role: model.RoleSuperAdmin, AdminID: a.ID})
	require.Equal(t, response.ErrUnauthorized.Code, call(t, r, "Bearer "+fake).Code)

	rootToken := jwt.CreateToken(jwt.Payload{Role: model.RoleSuperAdmin, AdminID: root.ID})
	require.Equal(t, int32(200), call(t, r, "Bearer "+rootToken).Code)

	// 账号被删除
	aToken := jwt.CreateToken(jwt.Payload{Role: model.RoleCollegeAdmin, AdminID: a.ID, CollegeID: c.ID})
	require.Equal(t, int32(200), call(t, r, "Bearer "+aToken).Code)
	require.NoError(t, db.Delete(&model.Admin{}, a.ID).Error)
	require.Equal(t, response.ErrUnauthorized.Code, call(t, r, "Bearer "+aToken).Code)

	// 学院被删除，其管理员和学生一并失效
	bToken := jwt.CreateToken(jwt.Payload{Role: model.RoleCollegeAdmin, AdminID: b.ID, CollegeID: other.ID})
	sToken := jwt.CreateToken(jwt.Payload{Role: model.RoleStudent, StudentID: s.ID, CollegeID: other.ID})
	require.Equal(t, int32(200), call(t, r, "Bearer "+sToken).Code)
	require.NoError(t, db.Delete(&model.College{}, other.ID).Error)
	require.Equal(t, response.ErrUnauthorized.Code, call(t, r, "Bearer "+bToken).Code)
	require.Equal(t, response.ErrUnauthorized.Code, call(t, r, "Bearer "+sToken).Code)
}
