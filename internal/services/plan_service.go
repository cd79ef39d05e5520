package services

import (
	"chatgate/internal/catalog"
	"chatgate/internal/models/response_models"
	"chatgate/pkg/utils"
)

type PlanServiceInterface interface {
	ListPlans() []response_models.PlanInfo
	GetPlan(name string) (response_models.PlanInfo, error)
}

type PlanService struct {
	plans *catalog.Catalog
}

func NewPlanService(plans *catalog.Catalog) PlanServiceInterface {
	return &PlanService{plans: plans}
}

func (p *PlanService) ListPlans() []response_models.PlanInfo {
	defs := p.plans.List()
	out := make([]response_models.PlanInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, planInfo(d))
	}
	return out
}

func (p *PlanService) GetPlan(name string) (response_models.PlanInfo, error) {
	d, ok := p.plans.Lookup(name)
	if !ok {
		return response_models.PlanInfo{}, utils.ErrPlanNotFound
	}
	return planInfo(d), nil
}

func planInfo(d catalog.PlanDefinition) response_models.PlanInfo {
	return response_models.PlanInfo{
		Name:         d.Name,
		Price:        d.Price,
		TokenLimit:   d.TokenLimit,
		DurationDays: d.DurationDays,
		Features:     d.Features,
	}
}
