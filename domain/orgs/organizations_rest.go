package orgs

import (
	"assignman/bizerror"
	"assignman/domain"
	"assignman/session"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var PathOrganizations = "/v1/organizations"

func RegisterOrganizationsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathOrganizations, middleWares...)
	g.POST("", handleCreateOrganization)
	g.GET("", handleQueryOrganizations)
}

func handleCreateOrganization(c *gin.Context) {
	creation := domain.OrganizationCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateOrganizationFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryOrganizations(c *gin.Context) {
	records, err := QueryOrganizationsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}
