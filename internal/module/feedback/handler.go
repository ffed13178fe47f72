package feedback

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
)

type SubmitReq struct {
	EventID uint   `json:"event_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=500"`
}

func SubmitHandler(c *gin.Context) {
	self, tenant, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	fb, err := Submit(database.DB.WithContext(c.Request.Context()), tenant, self.StudentID, req.EventID, req.Rating, req.Comment)
	if err != nil {
		log.Warn("提交评价失败", "error", err, "student_id", self.StudentID, "event_id", req.EventID)
		response.Fail(c, err)
		return
	}
	log.Info("评价已提交", "student_id", self.StudentID, "event_id", req.EventID, "rating", req.Rating)
	response.Success(c, gin.H{
		"message":  "Feedback submitted successfully",
		"feedback": fb,
	})
}

type UpdateReq struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}

func UpdateHandler(c *gin.Context) {
	self, _, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid feedback id"))
		return
	}
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	fb, err := Update(database.DB.WithContext(c.Request.Context()), self.StudentID, id, req.Rating, req.Comment)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"message":  "Feedback updated successfully",
		"feedback": fb,
	})
}

func DeleteHandler(c *gin.Context) {
	self, _, err := scope.StudentFromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	id, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid feedback id"))
		return
	}
	if err := Delete(database.DB.WithContext(c.Request.Context()), self.StudentID, id); err != nil {
		response.Fail(c, err)
		return
	}
	log.Info("评价已删除", "student_id", self.StudentID, "feedback_id", id)
	response.Success(c, gin.H{"message": "Feedback deleted successfully"})
}

func AverageHandler(c *gin.Context) {
	eventID, err := tools.ParamID(c, "id")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("invalid event id"))
		return
	}
	summary, err := Average(database.DB.WithContext(c.Request.Context()), eventID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, summary)
}

type AdminListReq struct {
	EventID uint `form:"event_id"`
}

func AdminListHandler(c *gin.Context) {
	tenant, err := scope.FromGin(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req AdminListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	p := tools.GetPage(c)
	feedbacks, total, err := List(database.DB.WithContext(c.Request.Context()), tenant, req.EventID, p)
	if err != nil {
		log.Error("查询评价列表失败", "error", err)
		response.Fail(c, err)
		return
	}
	response.Success(c, tools.PageResult("feedbacks", feedbacks, total, p))
}
