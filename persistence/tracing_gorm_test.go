package persistence_test

import (
	"assignman/domain"
	"assignman/testinfra"
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	otgorm "github.com/smacker/opentracing-gorm"
)

func tracingTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("assignman")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&domain.Member{}).Error).To(BeNil())
}

func tracingTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestGormTracing(t *testing.T) {
	RegisterTestingT(t)

	tracer := mocktracer.New()
	opentracing.SetGlobalTracer(tracer)
	var testDatabase *testinfra.TestDatabase

	t.Run("gorm tracing should be ignored when parent span not found", func(t *testing.T) {
		defer tracingTestTeardown(t, testDatabase)
		tracingTestSetup(t, &testDatabase)

		tracer.Reset()

		db := testDatabase.DS.GormDB()
		r := []domain.Member{}
		Expect(db.Find(&r).Error).To(BeNil())
		Expect(len(r)).To(BeZero())
		Expect(len(tracer.FinishedSpans())).To(Equal(0))

		r = []domain.Member{}
		Expect(otgorm.SetSpanToGorm(context.Background(), db).Find(&r).Error).To(BeNil())
		Expect(len(r)).To(BeZero())
		Expect(len(tracer.FinishedSpans())).To(Equal(0))
	})

	t.Run("gorm tracing should work with a parent span", func(t *testing.T) {
		defer tracingTestTeardown(t, testDatabase)
		tracingTestSetup(t, &testDatabase)

		tracer.Reset()

		clientSpan := tracer.StartSpan("client")
		ctx := opentracing.ContextWithSpan(context.Background(), clientSpan)
		db := otgorm.SetSpanToGorm(ctx, testDatabase.DS.GormDB())

		r := []domain.Member{}
		Expect(db.Find(&r).Error).To(BeNil())
		Expect(len(r)).To(BeZero())

		clientSpan.Finish()

		spans := tracer.FinishedSpans()
		Expect(len(spans)).To(Equal(2))
		Expect(spans[1].OperationName).To(Equal("client"))
		Expect(spans[1].ParentID).To(BeZero())
		Expect(spans[0].OperationName).To(Equal("sql"))
		Expect(spans[0].ParentID).To(Equal(spans[1].SpanContext.SpanID))
	})
}
