package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/repositories"
	"github.com/noschwa/expense-tracker/internal/services"
)

func TestCategoryService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockCategoryReader(ctrl)
	mockWriter := services.NewMockCategoryWriter(ctrl)
	mockCounter := services.NewMockExpenseCounter(ctrl)

	svc := services.NewCategoryService(mockReader, mockWriter, mockCounter)

	userID := uuid.New()
	visible := []models.CategoryDB{
		{CategoryID: uuid.New(), Name: "Food", IsDefault: true},
		{CategoryID: uuid.New(), UserID: &userID, Name: "Hobbies"},
	}

	tests := []struct {
		name       string
		categories []models.CategoryDB
		readerErr  error
		wantErr    bool
	}{
		{name: "defaults plus own", categories: visible},
		{name: "reader error", readerErr: errors.New("db error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				ListVisible(gomock.Any(), userID).
				Return(tt.categories, tt.readerErr)

			got, err := svc.List(context.Background(), userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.categories, got)
		})
	}
}

func TestCategoryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockCategoryReader(ctrl)
	mockWriter := services.NewMockCategoryWriter(ctrl)
	mockCounter := services.NewMockExpenseCounter(ctrl)

	svc := services.NewCategoryService(mockReader, mockWriter, mockCounter)

	userID := uuid.New()

	tests := []struct {
		name        string
		input       string
		trimmed     string
		nameTaken   bool
		readerErr   error
		writerErr   error
		wantErr     error
		expectCheck bool
		expectSave  bool
	}{
		{
			name:        "successful create",
			input:       "Hobbies",
			trimmed:     "Hobbies",
			expectCheck: true,
			expectSave:  true,
		},
		{
			name:        "name is trimmed",
			input:       "  Hobbies  ",
			trimmed:     "Hobbies",
			expectCheck: true,
			expectSave:  true,
		},
		{
			name:    "blank name",
			input:   "   ",
			wantErr: services.ErrCategoryNameRequired,
		},
		{
			name:        "duplicate name",
			input:       "Food",
			trimmed:     "Food",
			nameTaken:   true,
			expectCheck: true,
			wantErr:     services.ErrCategoryAlreadyExists,
		},
		{
			name:        "reader error",
			input:       "Hobbies",
			trimmed:     "Hobbies",
			readerErr:   errors.New("db error"),
			expectCheck: true,
			wantErr:     errors.New("db error"),
		},
		{
			name:        "writer error",
			input:       "Hobbies",
			trimmed:     "Hobbies",
			writerErr:   errors.New("save error"),
			expectCheck: true,
			expectSave:  true,
			wantErr:     errors.New("save error"),
		},
		{
			name:        "concurrent duplicate maps to conflict",
			input:       "Hobbies",
			trimmed:     "Hobbies",
			writerErr:   repositories.ErrCategoryNameTaken,
			expectCheck: true,
			expectSave:  true,
			wantErr:     services.ErrCategoryAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectCheck {
				mockReader.EXPECT().
					NameExists(gomock.Any(), userID, tt.trimmed, nil).
					Return(tt.nameTaken, tt.readerErr)
			}
			if tt.expectSave {
				created := &models.CategoryDB{CategoryID: uuid.New(), UserID: &userID, Name: tt.trimmed}
				if tt.writerErr != nil {
					created = nil
				}
				mockWriter.EXPECT().
					Save(gomock.Any(), userID, tt.trimmed).
					Return(created, tt.writerErr)
			}

			got, err := svc.Create(context.Background(), userID, tt.input)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.trimmed, got.Name)
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockCategoryReader(ctrl)
	mockWriter := services.NewMockCategoryWriter(ctrl)
	mockCounter := services.NewMockExpenseCounter(ctrl)

	svc := services.NewCategoryService(mockReader, mockWriter, mockCounter)

	userID := uuid.New()
	categoryID := uuid.New()

	tests := []struct {
		name         string
		input        string
		nameTaken    bool
		updated      *models.CategoryDB
		writerErr    error
		wantErr      error
		expectCheck  bool
		expectUpdate bool
	}{
		{
			name:         "successful rename",
			input:        "Dining out",
			updated:      &models.CategoryDB{CategoryID: categoryID, UserID: &userID, Name: "Dining out"},
			expectCheck:  true,
			expectUpdate: true,
		},
		{
			name:    "blank name",
			input:   "",
			wantErr: services.ErrCategoryNameRequired,
		},
		{
			name:        "duplicate name",
			input:       "Food",
			nameTaken:   true,
			expectCheck: true,
			wantErr:     services.ErrCategoryAlreadyExists,
		},
		{
			name:         "not owned or default",
			input:        "Dining out",
			updated:      nil,
			expectCheck:  true,
			expectUpdate: true,
			wantErr:      services.ErrCategoryNotFound,
		},
		{
			name:         "writer error",
			input:        "Dining out",
			writerErr:    errors.New("db error"),
			expectCheck:  true,
			expectUpdate: true,
			wantErr:      errors.New("db error"),
		},
		{
			name:         "concurrent duplicate maps to conflict",
			input:        "Dining out",
			writerErr:    repositories.ErrCategoryNameTaken,
			expectCheck:  true,
			expectUpdate: true,
			wantErr:      services.ErrCategoryAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectCheck {
				mockReader.EXPECT().
					NameExists(gomock.Any(), userID, tt.input, &categoryID).
					Return(tt.nameTaken, nil)
			}
			if tt.expectUpdate {
				mockWriter.EXPECT().
					Update(gomock.Any(), userID, categoryID, tt.input).
					Return(tt.updated, tt.writerErr)
			}

			got, err := svc.Update(context.Background(), userID, categoryID, tt.input)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.updated, got)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockCategoryReader(ctrl)
	mockWriter := services.NewMockCategoryWriter(ctrl)
	mockCounter := services.NewMockExpenseCounter(ctrl)

	svc := services.NewCategoryService(mockReader, mockWriter, mockCounter)

	userID := uuid.New()
	categoryID := uuid.New()

	tests := []struct {
		name         string
		count        int64
		countErr     error
		deleted      bool
		writerErr    error
		wantErr      error
		expectDelete bool
	}{
		{
			name:         "successful delete",
			count:        0,
			deleted:      true,
			expectDelete: true,
		},
		{
			name:    "category in use",
			count:   3,
			wantErr: services.ErrCategoryInUse,
		},
		{
			name:         "not owned or default",
			count:        0,
			deleted:      false,
			expectDelete: true,
			wantErr:      services.ErrCategoryNotFound,
		},
		{
			name:     "count error",
			countErr: errors.New("db error"),
			wantErr:  errors.New("db error"),
		},
		{
			name:         "fk backstop maps to in use",
			count:        0,
			writerErr:    repositories.ErrCategoryReferenced,
			expectDelete: true,
			wantErr:      services.ErrCategoryInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCounter.EXPECT().
				CountByCategory(gomock.Any(), userID, categoryID).
				Return(tt.count, tt.countErr)

			if tt.expectDelete {
				mockWriter.EXPECT().
					Delete(gomock.Any(), userID, categoryID).
					Return(tt.deleted, tt.writerErr)
			}

			err := svc.Delete(context.Background(), userID, categoryID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}
