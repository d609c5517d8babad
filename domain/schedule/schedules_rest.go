package schedule

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/session"
	"errors"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

var PathMemberSchedules = "/v1/members/:id/schedules"

func RegisterSchedulesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathMemberSchedules, middleWares...)
	g.GET("", handleQueryMemberSchedule)
}

func handleQueryMemberSchedule(c *gin.Context) {
	memberId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	start, err := domain.ParseDate(c.Query("start"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid start date '" + c.Query("start") + "'")})
	}
	end, err := domain.ParseDate(c.Query("end"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid end date '" + c.Query("end") + "'")})
	}

	sec := session.FindSecurityContext(c)
	view, err := BuildMemberScheduleFunc(ScheduleQuery{
		MemberID:  memberId,
		StartDate: start,
		EndDate:   end,
		Viewer:    ScheduleViewer{AdministratorID: sec.AdministratorID},
	})
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, view)
}
