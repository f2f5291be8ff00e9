package services_test

import (
	"context"
	"testing"

	"project-tracker/internal/models"
	"project-tracker/internal/services"
	"project-tracker/internal/store"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/suite"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	store   store.Store
	service *services.ProjectServiceImpl
	ctx     context.Context

	manager services.Actor
	editor  services.Actor
	viewer  services.Actor
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.store, _ = newTestStore(suite.T())
	suite.service = services.NewProjectService(suite.store, nil)
	suite.ctx = context.Background()

	suite.manager = suite.createUser("boss", models.RoleManager)
	suite.editor = suite.createUser("writer", models.RoleEditor)
	suite.viewer = suite.createUser("guest", models.RoleViewer)
}

func (suite *ProjectServiceTestSuite) createUser(username, role string) services.Actor {
	user := models.User{
		ID:           uuid.Must(uuid.NewV4()),
		Username:     username,
		PasswordHash: "hash",
		Role:         role,
	}
	suite.Require().NoError(suite.store.CreateUser(suite.ctx, user))
	return services.Actor{ID: user.ID, Role: user.Role}
}

func (suite *ProjectServiceTestSuite) TestCreateProjectManagerOnly() {
	project, err := suite.service.CreateProject(suite.ctx, suite.manager, "Launch", "")
	suite.Require().NoError(err)
	suite.Equal("General", project.Category, "empty category defaults")
	suite.Equal(suite.manager.ID, project.OwnerID)

	for _, actor := range []services.Actor{suite.editor, suite.viewer} {
		_, err := suite.service.CreateProject(suite.ctx, actor, "Denied", "")
		reason, ok := services.IsForbidden(err)
		suite.Require().True(ok)
		suite.Equal(services.ReasonRoleNotPermitted, reason)
	}
}

func (suite *ProjectServiceTestSuite) TestCreateProjectRequiresName() {
	_, err := suite.service.CreateProject(suite.ctx, suite.manager, "   ", "")
	suite.ErrorIs(err, services.ErrInvalidInput)
}

func (suite *ProjectServiceTestSuite) TestListProjectsScoping() {
	_, err := suite.service.CreateProject(suite.ctx, suite.manager, "Mine", "")
	suite.Require().NoError(err)

	otherManager := suite.createUser("rival", models.RoleManager)
	_, err = suite.service.CreateProject(suite.ctx, otherManager, "Theirs", "")
	suite.Require().NoError(err)

	mine, err := suite.service.ListProjects(suite.ctx, suite.manager)
	suite.Require().NoError(err)
	suite.Len(mine, 1)
	suite.Equal("Mine", mine[0].Name)

	all, err := suite.service.ListProjects(suite.ctx, suite.viewer)
	suite.Require().NoError(err)
	suite.Len(all, 2, "viewers see every project regardless of owner")
}

func (suite *ProjectServiceTestSuite) TestGetProjectOwnershipRules() {
	project, err := suite.service.CreateProject(suite.ctx, suite.manager, "Mine", "")
	suite.Require().NoError(err)

	_, _, err = suite.service.GetProject(suite.ctx, suite.manager, project.ID)
	suite.NoError(err)

	_, _, err = suite.service.GetProject(suite.ctx, suite.viewer, project.ID)
	suite.NoError(err, "viewers may view any project")

	_, _, err = suite.service.GetProject(suite.ctx, suite.editor, project.ID)
	reason, ok := services.IsForbidden(err)
	suite.Require().True(ok)
	suite.Equal(services.ReasonNotOwner, reason)
}

func (suite *ProjectServiceTestSuite) TestGetProjectNotFound() {
	_, _, err := suite.service.GetProject(suite.ctx, suite.manager, uuid.Must(uuid.NewV4()))
	suite.ErrorIs(err, services.ErrNotFound)
}

func (suite *ProjectServiceTestSuite) TestSetProjectRole() {
	project, err := suite.service.CreateProject(suite.ctx, suite.manager, "Mine", "")
	suite.Require().NoError(err)

	err = suite.service.SetProjectRole(suite.ctx, suite.manager, suite.editor.ID, project.ID, models.RoleViewer)
	suite.Require().NoError(err)

	// Editor's effective role on this project is now Viewer, which may view.
	_, _, err = suite.service.GetProject(suite.ctx, suite.editor, project.ID)
	suite.NoError(err)

	// Only the owning manager can grant overrides.
	err = suite.service.SetProjectRole(suite.ctx, suite.editor, suite.viewer.ID, project.ID, models.RoleEditor)
	reason, ok := services.IsForbidden(err)
	suite.Require().True(ok)
	suite.Equal(services.ReasonRoleNotPermitted, reason)

	err = suite.service.SetProjectRole(suite.ctx, suite.manager, suite.editor.ID, project.ID, "root")
	suite.ErrorIs(err, services.ErrInvalidInput)

	// Editor/Manager grants are refused: ownership gates every write action,
	// so such a grant to a non-owner could never take effect.
	err = suite.service.SetProjectRole(suite.ctx, suite.manager, suite.editor.ID, project.ID, models.RoleEditor)
	suite.ErrorIs(err, services.ErrInvalidInput)
	err = suite.service.SetProjectRole(suite.ctx, suite.manager, suite.viewer.ID, project.ID, models.RoleManager)
	suite.ErrorIs(err, services.ErrInvalidInput)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
