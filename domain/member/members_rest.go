package member

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/domain/assignment"
	"assignman/session"
	"errors"
	"net/http"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var PathMembers = "/v1/members"

func RegisterMembersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathMembers, middleWares...)
	g.POST("", handleCreateMember)
	g.GET("", handleQueryMembers)
	g.PUT(":id", handleUpdateMember)
	g.DELETE(":id", handleDeleteMember)
	g.GET(":id/availabilities", handleQueryMemberAvailability)
	g.GET(":id/scheduled-hours", handleQueryMemberScheduledHours)
}

func handleCreateMember(c *gin.Context) {
	creation := domain.MemberCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateMemberFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryMembers(c *gin.Context) {
	records, err := QueryMembersFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleUpdateMember(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	updating := domain.MemberUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := UpdateMemberFunc(parsedId, &updating, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleDeleteMember(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	if err := DeleteMemberFunc(parsedId, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

type memberAvailability struct {
	Date           domain.Date `json:"date"`
	ScheduledHours float64     `json:"scheduledHours"`
	AvailableHours float64     `json:"availableHours"`

	// committed hours of the week containing Date
	WeekScheduledHours float64 `json:"weekScheduledHours"`
}

func handleQueryMemberAvailability(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid date '" + c.Query("date") + "'")})
	}

	scheduled, err := assignment.ScheduledHoursOnDate(parsedId, date)
	if err != nil {
		panic(err)
	}
	available, err := assignment.AvailableHoursOnDate(parsedId, date)
	if err != nil {
		panic(err)
	}
	weekStart := date.AddDays(-((int(date.Weekday()) - int(time.Monday) + 7) % 7))
	week, err := assignment.ScheduledHoursForWeek(parsedId, weekStart)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &memberAvailability{Date: date, ScheduledHours: scheduled,
		AvailableHours: available, WeekScheduledHours: week})
}

type memberScheduledHours struct {
	StartDate  domain.Date `json:"startDate"`
	EndDate    domain.Date `json:"endDate"`
	TotalHours float64     `json:"totalHours"`
}

func handleQueryMemberScheduledHours(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
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

	total, err := assignment.TotalScheduledHours(parsedId, start, end)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &memberScheduledHours{StartDate: start, EndDate: end, TotalHours: total})
}
