package main

import (
	"assignman/account"
	"assignman/bizerror"
	"assignman/common"
	"assignman/domain"
	"assignman/domain/assignment"
	"assignman/domain/member"
	"assignman/domain/orgs"
	"assignman/domain/project"
	"assignman/domain/schedule"
	"assignman/domain/skill"
	"assignman/infra/tracing"
	"assignman/persistence"
	"assignman/session"
	"assignman/sessions"
	"net/http"

	"github.com/gin-gonic/gin"
)

func main() {
	common.Log.Infoln("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		common.Log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			common.Log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		common.Log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB().AutoMigrate(
		&account.User{}, &account.UserPermissionBinding{},
		&domain.Organization{}, &domain.Administrator{},
		&domain.Member{}, &domain.Skill{}, &domain.MemberSkill{},
		&domain.StandardProject{}, &domain.OngoingProject{}, &domain.ProjectPlan{},
		&domain.RoughProjectAssignment{}, &domain.DetailedProjectAssignment{}, &domain.OngoingAssignment{},
	).Error
	if err != nil {
		common.Log.Fatalf("database migration failed %v\n", err)
	}

	if err := account.DefaultSecurityConfiguration(); err != nil {
		common.Log.Fatalf("default security configuration failed %v\n", err)
	}

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "assignman")
	})

	sessions.RegisterSessionsHandler(engine)

	secured := session.SimpleAuthFilter()
	account.RegisterUsersHandler(engine, secured)
	orgs.RegisterOrganizationsRestAPI(engine, secured)
	member.RegisterMembersRestAPI(engine, secured)
	skill.RegisterSkillsRestAPI(engine, secured)
	project.RegisterProjectsRestAPI(engine, secured)
	assignment.RegisterAssignmentsRestAPI(engine, secured)
	schedule.RegisterSchedulesRestAPI(engine, secured)

	err = engine.Run(":80")
	if err != nil {
		panic(err)
	}
}
