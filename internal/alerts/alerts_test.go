package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestNew_DisabledWithoutTopic(t *testing.T) {
	assert.Nil(t, New(&fakePublisher{}, " "))
	assert.Nil(t, New(nil, "arn:aws:sns:eu-west-1:1:t"))

	var n *Notifier
	assert.NoError(t, n.ProvisioningFailed(context.Background(), cfn.Event{}, errors.New("x")))
}

func TestProvisioningFailed_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	n := New(pub, "arn:aws:sns:eu-west-1:1:t")

	err := n.ProvisioningFailed(context.Background(), cfn.Event{
		RequestType:       cfn.RequestUpdate,
		StackID:           "stack-1",
		LogicalResourceID: "Initialize",
	}, errors.New("ims authentication failed"))
	require.NoError(t, err)

	require.Len(t, pub.inputs, 1)
	in := pub.inputs[0]
	assert.Equal(t, "arn:aws:sns:eu-west-1:1:t", aws.ToString(in.TopicArn))
	assert.Contains(t, aws.ToString(in.Subject), "Update")
	assert.Contains(t, aws.ToString(in.Message), "stack-1")
	assert.Contains(t, aws.ToString(in.Message), "ims authentication failed")
}

func TestProvisioningFailed_NoCauseNoPublish(t *testing.T) {
	pub := &fakePublisher{}
	require.NoError(t, New(pub, "arn").ProvisioningFailed(context.Background(), cfn.Event{}, nil))
	assert.Empty(t, pub.inputs)
}

func TestProvisioningFailed_PublishError(t *testing.T) {
	boom := errors.New("throttled")
	err := New(&fakePublisher{err: boom}, "arn").ProvisioningFailed(context.Background(), cfn.Event{}, errors.New("x"))
	assert.ErrorIs(t, err, boom)
}
