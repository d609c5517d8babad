package skill

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
	PathSkills       = "/v1/skills"
	PathMemberSkills = "/v1/member-skills"
)

func RegisterSkillsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathSkills, middleWares...)
	g.POST("", handleCreateSkill)
	g.GET("", handleQuerySkills)

	m := r.Group(PathMemberSkills, middleWares...)
	m.POST("", handleAssignSkillToMember)
	m.GET("", handleQueryMemberSkills)
}

func handleCreateSkill(c *gin.Context) {
	creation := domain.SkillCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateSkillFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQuerySkills(c *gin.Context) {
	records, err := QuerySkillsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleAssignSkillToMember(c *gin.Context) {
	assigning := domain.MemberSkillAssigning{}
	if err := c.ShouldBindBodyWith(&assigning, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := AssignSkillToMemberFunc(&assigning, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryMemberSkills(c *gin.Context) {
	memberId, err := types.ParseID(c.Query("memberId"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid memberId '" + c.Query("memberId") + "'")})
	}
	records, err := QueryMemberSkillsFunc(memberId, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
