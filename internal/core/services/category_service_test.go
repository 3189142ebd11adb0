package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/core/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type CategoryServiceTestSuite struct {
	suite.Suite
	repo    *MockCategoryRepository
	service portssvc.CategorySvcFacade
	ctx     context.Context
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.repo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.repo)
	suite.ctx = context.Background()
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	suite.repo.On("SaveCategory", suite.ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Work" && c.Description == "Tools" && c.CategoryID != ""
	})).Return(nil).Once()

	cat, err := suite.service.CreateCategory(suite.ctx, dto.CreateCategoryRequest{Name: " Work ", Description: "Tools"})

	suite.Require().NoError(err)
	suite.Equal("Work", cat.Name)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Validation() {
	_, err := suite.service.CreateCategory(suite.ctx, dto.CreateCategoryRequest{Name: ""})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.repo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Duplicate() {
	suite.repo.On("SaveCategory", suite.ctx, mock.Anything).Return(fmt.Errorf("category name taken: %w", apperrors.ErrDuplicate)).Once()

	_, err := suite.service.CreateCategory(suite.ctx, dto.CreateCategoryRequest{Name: "Work"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CategoryServiceTestSuite) TestListCategories_EmptyIsNotNil() {
	suite.repo.On("ListCategories", suite.ctx).Return(nil, nil).Once()

	cats, err := suite.service.ListCategories(suite.ctx)
	suite.Require().NoError(err)
	suite.NotNil(cats)
	suite.Empty(cats)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory() {
	existing := &domain.Category{CategoryID: "c1", Name: "Old", Description: "keep"}
	suite.repo.On("FindCategoryByID", suite.ctx, "c1").Return(existing, nil).Once()
	suite.repo.On("UpdateCategory", suite.ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "New" && c.Description == "keep"
	})).Return(nil).Once()

	name := "New"
	cat, err := suite.service.UpdateCategory(suite.ctx, "c1", dto.UpdateCategoryRequest{Name: &name})
	suite.Require().NoError(err)
	suite.Equal("New", cat.Name)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory() {
	suite.repo.On("FindCategoryByID", suite.ctx, "c1").Return(&domain.Category{CategoryID: "c1"}, nil).Once()
	suite.repo.On("DeleteCategory", suite.ctx, "c1").Return(true, nil).Once()
	suite.NoError(suite.service.DeleteCategory(suite.ctx, "c1"))

	suite.repo.On("FindCategoryByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()
	suite.ErrorIs(suite.service.DeleteCategory(suite.ctx, "missing"), apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestSeedDefaultCategories_SkipsExisting() {
	suite.repo.On("SaveCategory", suite.ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Work" || c.Name == "Finance"
	})).Return(apperrors.ErrDuplicate)
	suite.repo.On("SaveCategory", suite.ctx, mock.Anything).Return(nil)

	created, err := suite.service.SeedDefaultCategories(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(created, len(services.DefaultCategories)-2)
	for _, c := range created {
		suite.NotEqual("Work", c.Name)
		suite.NotEqual("Finance", c.Name)
	}
	suite.repo.AssertNumberOfCalls(suite.T(), "SaveCategory", len(services.DefaultCategories))
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
