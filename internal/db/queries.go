package db

import (
	"math"

	"gorm.io/gorm"

	"github.com/forgeops/buildboard/internal/models"
)

// Page is one page of a descending-by-creation listing.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Pages int
}

func pages(total int64, perPage int) int {
	return int(math.Ceil(float64(total) / float64(perPage)))
}

func CreateProject(db *gorm.DB, p *models.Project) error {
	return db.Create(p).Error
}

func GetProject(db *gorm.DB, id uint) (*models.Project, error) {
	var p models.Project
	if err := db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func GetProjectByName(db *gorm.DB, name string) (*models.Project, error) {
	var p models.Project
	if err := db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjects returns one page of projects, newest first.
func ListProjects(db *gorm.DB, page, perPage int) (*Page[models.Project], error) {
	var total int64
	if err := db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, err
	}
	var projects []models.Project
	err := db.Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return &Page[models.Project]{Items: projects, Total: total, Page: page, Pages: pages(total, perPage)}, nil
}

// DeleteProject removes a project together with its builds in one
// transaction.
func DeleteProject(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Build{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// CreateBuild inserts a build and syncs the owning project's rollup status
// in the same transaction. Concurrent triggers are last-write-wins on the
// rollup; builds themselves are immutable.
func CreateBuild(db *gorm.DB, b *models.Build) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", b.ProjectID).
			Update("last_build_status", b.Status).Error
	})
}

// ListBuilds returns one page of a project's builds, newest first.
func ListBuilds(db *gorm.DB, projectID uint, page, perPage int) (*Page[models.Build], error) {
	var total int64
	if err := db.Model(&models.Build{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, err
	}
	var builds []models.Build
	err := db.Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&builds).Error
	if err != nil {
		return nil, err
	}
	return &Page[models.Build]{Items: builds, Total: total, Page: page, Pages: pages(total, perPage)}, nil
}

func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var u models.User
	if err := db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
