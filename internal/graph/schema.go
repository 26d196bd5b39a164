package graph

import (
	"context"                                // Request scoped identity
	"errors"                                 // Error matching
	"reservation_system/internal/apperr"     // Application error kinds
	"reservation_system/internal/domain"     // Importing domain models
	"reservation_system/internal/middleware" // Identity lookup
	"reservation_system/internal/service"    // Reservation operations

	"github.com/graphql-go/graphql" // GraphQL schema and execution
)

// Reservations is the reservation service used by the resolvers
type Reservations interface {
	Create(ctx context.Context, who service.Identity, in service.CreateReservationInput) (*domain.Reservation, error)
	List(ctx context.Context, filter service.ListFilter) ([]domain.Reservation, error)
	Get(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, who service.Identity, id, status string) (*domain.Reservation, error)
	Cancel(ctx context.Context, who service.Identity, id string) (*domain.Reservation, error)
}

// resolverError shows clients the message and kind, never the underlying cause
type resolverError struct {
	err *apperr.Error
}

func (e resolverError) Error() string { return e.err.Message }

func (e resolverError) Extensions() map[string]interface{} { return e.err.Extensions() }

func (e resolverError) Unwrap() error { return e.err }

// clientError converts any error into a resolverError
func clientError(err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Wrap(apperr.Internal, "internal server error", err)
	}
	return resolverError{err: appErr}
}

var statusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "Status",
	Description: "Reservation lifecycle state",
	Values: graphql.EnumValueConfigMap{
		string(domain.StatusRequested): &graphql.EnumValueConfig{Value: string(domain.StatusRequested)},
		string(domain.StatusApproved):  &graphql.EnumValueConfig{Value: string(domain.StatusApproved)},
		string(domain.StatusCancelled): &graphql.EnumValueConfig{Value: string(domain.StatusCancelled)},
		string(domain.StatusCompleted): &graphql.EnumValueConfig{Value: string(domain.StatusCompleted)},
	},
})

var reservationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reservation",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"guestName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone":       &graphql.Field{Type: graphql.String},
		"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"arrivalTime": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"tableSize":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"status":      &graphql.Field{Type: graphql.NewNonNull(statusEnum)},
		"userId":      &graphql.Field{Type: graphql.ID},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

// toMap flattens a reservation for the default field resolver
func toMap(r *domain.Reservation) map[string]interface{} {
	var phone interface{}
	if r.Phone != "" {
		phone = r.Phone
	}
	return map[string]interface{}{
		"id":          r.ID,
		"guestName":   r.GuestName,
		"phone":       phone,
		"email":       r.Email,
		"arrivalTime": r.ArrivalTime,
		"tableSize":   r.TableSize,
		"status":      string(r.Status),
		"userId":      r.UserID,
		"createdAt":   r.CreatedAt,
	}
}

type resolvers struct {
	reservations Reservations
}

// identity returns the caller attached by the request context resolver
func identity(ctx context.Context) (service.Identity, error) {
	if ctx == nil {
		return service.Identity{}, clientError(apperr.New(apperr.MissingOrMalformedAuthHeader, "Not authenticated"))
	}
	who, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return service.Identity{}, clientError(apperr.New(apperr.MissingOrMalformedAuthHeader, "Not authenticated"))
	}
	return who, nil
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func (r *resolvers) list(p graphql.ResolveParams) (interface{}, error) {
	if _, err := identity(p.Context); err != nil {
		return nil, err
	}
	found, err := r.reservations.List(p.Context, service.ListFilter{Status: stringArg(p, "status"), Date: stringArg(p, "date")})
	if err != nil {
		return nil, clientError(err)
	}
	out := make([]interface{}, 0, len(found))
	for i := range found {
		out = append(out, toMap(&found[i]))
	}
	return out, nil
}

func (r *resolvers) get(p graphql.ResolveParams) (interface{}, error) {
	if _, err := identity(p.Context); err != nil {
		return nil, err
	}
	res, err := r.reservations.Get(p.Context, stringArg(p, "id"))
	if err != nil {
		return nil, clientError(err)
	}
	return toMap(res), nil
}

func (r *resolvers) create(p graphql.ResolveParams) (interface{}, error) {
	who, err := identity(p.Context)
	if err != nil {
		return nil, err
	}
	tableSize, _ := p.Args["tableSize"].(int)
	res, err := r.reservations.Create(p.Context, who, service.CreateReservationInput{
		GuestName:   stringArg(p, "guestName"),
		Email:       stringArg(p, "email"),
		Phone:       stringArg(p, "phone"),
		ArrivalTime: stringArg(p, "arrivalTime"),
		TableSize:   tableSize,
	})
	if err != nil {
		return nil, clientError(err)
	}
	return toMap(res), nil
}

func (r *resolvers) updateStatus(p graphql.ResolveParams) (interface{}, error) {
	who, err := identity(p.Context)
	if err != nil {
		return nil, err
	}
	res, err := r.reservations.UpdateStatus(p.Context, who, stringArg(p, "id"), stringArg(p, "status"))
	if err != nil {
		return nil, clientError(err)
	}
	return toMap(res), nil
}

func (r *resolvers) cancel(p graphql.ResolveParams) (interface{}, error) {
	who, err := identity(p.Context)
	if err != nil {
		return nil, err
	}
	res, err := r.reservations.Cancel(p.Context, who, stringArg(p, "id"))
	if err != nil {
		return nil, clientError(err)
	}
	return toMap(res), nil
}

// NewSchema builds the reservations schema
func NewSchema(reservations Reservations) (graphql.Schema, error) {
	r := &resolvers{reservations: reservations}
	nonNullID := graphql.NewNonNull(graphql.ID)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"reservations": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(reservationType))),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: statusEnum},
					"date":   &graphql.ArgumentConfig{Type: graphql.String, Description: "Creation day, YYYY-MM-DD (UTC)"},
				},
				Resolve: r.list,
			},
			"reservation": &graphql.Field{
				Type:    reservationType,
				Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNullID}},
				Resolve: r.get,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createReservation": &graphql.Field{
				Type: reservationType,
				Args: graphql.FieldConfigArgument{
					"guestName":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone":       &graphql.ArgumentConfig{Type: graphql.String},
					"arrivalTime": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"tableSize":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.create,
			},
			"updateReservationStatus": &graphql.Field{
				Type: reservationType,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: nonNullID},
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(statusEnum)},
				},
				Resolve: r.updateStatus,
			},
			"cancelReservation": &graphql.Field{
				Type:    reservationType,
				Args:    graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: nonNullID}},
				Resolve: r.cancel,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
