package assignment

import (
	"assignman/bizerror"
	"assignman/session"
	"errors"
	"net/http"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathRoughAssignments    = "/v1/rough-assignments"
	PathOngoingAssignments  = "/v1/ongoing-assignments"
	PathDetailedAssignments = "/v1/detailed-assignments"
)

func RegisterAssignmentsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	rough := r.Group(PathRoughAssignments, middleWares...)
	rough.POST("", handleCreateRoughAssignment)
	rough.DELETE(":id", handleDeleteRoughAssignment)
	rough.POST(":id/confirmation", handleConfirmRoughAssignment)

	ongoing := r.Group(PathOngoingAssignments, middleWares...)
	ongoing.POST("", handleCreateOngoingAssignment)

	detailed := r.Group(PathDetailedAssignments, middleWares...)
	detailed.POST(":id/acknowledgement", handleAcknowledgeDetailedAssignment)
}

func parsePathId(c *gin.Context) types.ID {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	return parsedId
}

func handleCreateRoughAssignment(c *gin.Context) {
	creation := RoughAssignmentCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if creation.AdministratorID == 0 {
		creation.AdministratorID = session.FindSecurityContext(c).AdministratorID
	}
	record, err := CreateRoughAssignmentFunc(creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleDeleteRoughAssignment(c *gin.Context) {
	sec := session.FindSecurityContext(c)
	if err := DeleteRoughAssignmentFunc(parsePathId(c), sec.AdministratorID); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleConfirmRoughAssignment(c *gin.Context) {
	sec := session.FindSecurityContext(c)
	record, err := ConfirmRoughAssignmentFunc(parsePathId(c), sec.AdministratorID)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleCreateOngoingAssignment(c *gin.Context) {
	creation := OngoingAssignmentCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if creation.AdministratorID == 0 {
		creation.AdministratorID = session.FindSecurityContext(c).AdministratorID
	}
	record, err := CreateOngoingAssignmentFunc(creation)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

type detailedAssignmentAcknowledging struct {
	MemberID types.ID `json:"memberId" binding:"required"`
}

func handleAcknowledgeDetailedAssignment(c *gin.Context) {
	acknowledging := detailedAssignmentAcknowledging{}
	if err := c.ShouldBindBodyWith(&acknowledging, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := AcknowledgeDetailedAssignmentFunc(parsePathId(c), acknowledging.MemberID)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
