package project

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/session"
	"errors"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathStandardProjects = "/v1/standard-projects"
	PathOngoingProjects  = "/v1/ongoing-projects"
)

func RegisterProjectsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	s := r.Group(PathStandardProjects, middleWares...)
	s.POST("", handleCreateStandardProject)
	s.GET("", handleQueryStandardProjects)
	s.PUT(":id/status", handleUpdateStandardProjectStatus)
	s.GET(":id/plan", handleDetailProjectPlan)

	o := r.Group(PathOngoingProjects, middleWares...)
	o.POST("", handleCreateOngoingProject)
	o.GET("", handleQueryOngoingProjects)
	o.PUT(":id/status", handleUpdateOngoingProjectStatus)
}

func parsePathId(c *gin.Context) types.ID {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	return parsedId
}

func handleCreateStandardProject(c *gin.Context) {
	creation := domain.StandardProjectCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateStandardProjectFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryStandardProjects(c *gin.Context) {
	records, err := QueryStandardProjectsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleUpdateStandardProjectStatus(c *gin.Context) {
	updating := StandardProjectStatusUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateStandardProjectStatusFunc(parsePathId(c), &updating, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleDetailProjectPlan(c *gin.Context) {
	record, err := DetailProjectPlanFunc(parsePathId(c), session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleCreateOngoingProject(c *gin.Context) {
	creation := domain.OngoingProjectCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateOngoingProjectFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryOngoingProjects(c *gin.Context) {
	records, err := QueryOngoingProjectsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleUpdateOngoingProjectStatus(c *gin.Context) {
	updating := OngoingProjectStatusUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateOngoingProjectStatusFunc(parsePathId(c), &updating, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
